package parser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/shibukawa/tsqlschema"
	"github.com/shibukawa/tsqlschema/tokenizer"
	"golang.org/x/sync/errgroup"
)

// Options controls the batch conversion.
type Options struct {
	// Logger receives the parse trace. nil discards it.
	Logger *slog.Logger
	// IsolateFailures keeps converting after a statement fails and reports
	// the failure in Result.Err. By default the first failure aborts the batch.
	IsolateFailures bool
	// Workers is the number of statements parsed concurrently. Values below
	// 2 parse sequentially.
	Workers int
	// BatchSeparator splits batches in addition to semicolons. Empty disables it.
	BatchSeparator string
}

// DefaultOptions provides the default conversion options (fail fast, sequential, GO batches).
var DefaultOptions = Options{
	Workers:        1,
	BatchSeparator: tokenizer.DefaultBatchSeparator,
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}

	return o.Logger
}

// Result is the outcome for one CREATE TABLE statement.
type Result struct {
	Table *tsqlschema.TableMetadata
	// Ordinal is the 0-based position among all non-empty statements of the batch.
	Ordinal int
	// Err is only set when Options.IsolateFailures is enabled.
	Err error
}

// ConvertToMetadata extracts the metadata of every CREATE TABLE statement in src.
func ConvertToMetadata(src string, opts Options) ([]Result, error) {
	statements, err := tokenizer.Parse(src, opts.BatchSeparator)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", tsqlschema.ErrInvalidSQL, err)
	}

	return ParseStatements(statements, opts)
}

// ConvertFileToMetadata reads path and converts its content.
func ConvertFileToMetadata(path string, opts Options) ([]Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read SQL file: %w", err)
	}

	opts.Logger = opts.logger().With("file", path)

	return ConvertToMetadata(string(data), opts)
}

type createTableJob struct {
	ordinal int
	tokens  []Token
}

// ParseStatements normalizes and classifies the statements and parses the
// CREATE TABLE ones. Results are returned in source order.
func ParseStatements(statements []*tokenizer.Statement, opts Options) ([]Result, error) {
	logger := opts.logger()

	var jobs []createTableJob

	ordinal := 0

	for _, statement := range statements {
		tokens := Normalize(statement)

		kind := Classify(tokens)
		switch kind {
		case StatementEmpty:
			continue
		case StatementCreateTable:
			jobs = append(jobs, createTableJob{ordinal: ordinal, tokens: tokens})
		default:
			logger.Debug("statement skipped", "statement", ordinal, "kind", kind.String())
		}

		ordinal++
	}

	results := make([]Result, len(jobs))

	var err error
	if opts.Workers > 1 && len(jobs) > 1 {
		err = parseConcurrently(jobs, results, opts)
	} else {
		err = parseSequentially(jobs, results, opts)
	}

	if err != nil {
		return nil, err
	}

	return results, nil
}

func parseJob(job createTableJob, opts Options) Result {
	table, err := ParseCreateTable(job.tokens, opts.logger().With("statement", job.ordinal))
	if err != nil {
		var parseError *ParseError
		if errors.As(err, &parseError) {
			parseError.Statement = job.ordinal
		}
	}

	return Result{Table: table, Ordinal: job.ordinal, Err: err}
}

func parseSequentially(jobs []createTableJob, results []Result, opts Options) error {
	for i, job := range jobs {
		results[i] = parseJob(job, opts)
		if results[i].Err != nil && !opts.IsolateFailures {
			return results[i].Err
		}
	}

	return nil
}

// parseConcurrently parses with up to opts.Workers goroutines. In fail-fast
// mode no job is started after a failure, and the failure reported is the
// earliest one in source order.
func parseConcurrently(jobs []createTableJob, results []Result, opts Options) error {
	group, ctx := errgroup.WithContext(context.Background())
	group.SetLimit(opts.Workers)

	for i, job := range jobs {
		if ctx.Err() != nil {
			break
		}

		group.Go(func() error {
			results[i] = parseJob(job, opts)
			if opts.IsolateFailures {
				return nil
			}

			return results[i].Err
		})
	}

	if err := group.Wait(); err == nil {
		return nil
	}

	for _, result := range results {
		if result.Err != nil {
			return result.Err
		}
	}

	return nil
}
