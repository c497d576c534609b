package parser

import "strings"

// https://learn.microsoft.com/en-us/sql/t-sql/data-types/data-types-transact-sql
var dataTypes = map[string]bool{
	// exact numerics
	"BIGINT": true, "NUMERIC": true, "BIT": true, "SMALLINT": true, "DECIMAL": true,
	"SMALLMONEY": true, "INT": true, "TINYINT": true, "MONEY": true,
	// approximate numerics
	"FLOAT": true, "REAL": true,
	// date and time
	"DATE": true, "DATETIMEOFFSET": true, "DATETIME2": true, "SMALLDATETIME": true,
	"DATETIME": true, "TIME": true,
	// character strings
	"CHAR": true, "VARCHAR": true, "TEXT": true,
	// unicode character strings
	"NCHAR": true, "NVARCHAR": true, "NTEXT": true,
	// binary strings
	"BINARY": true, "VARBINARY": true, "IMAGE": true,
	// other
	"ROWVERSION": true, "UNIQUEIDENTIFIER": true,
}

// types sized with (precision, scale)
var precisionScaleTypes = map[string]bool{
	"DECIMAL": true,
	"NUMERIC": true,
}

// types sized with (n), and the size used when none is given
var defaultSizes = map[string]int{
	"FLOAT":     53,
	"CHAR":      1,
	"VARCHAR":   1,
	"NCHAR":     1,
	"NVARCHAR":  1,
	"BINARY":    1,
	"VARBINARY": 1,
}

// types accepting (MAX)
var maxSizeTypes = map[string]bool{
	"VARCHAR":   true,
	"NVARCHAR":  true,
	"VARBINARY": true,
}

var keywords = map[string]bool{
	"ADD": true, "ALTER": true, "AS": true, "ASC": true,
	"CASCADE": true, "CHECK": true, "CLUSTERED": true, "COLLATE": true, "CONSTRAINT": true,
	"CREATE": true, "DEFAULT": true, "DELETE": true, "DESC": true, "DROP": true,
	"FOR": true, "FOREIGN": true, "IDENTITY": true, "INDEX": true, "KEY": true,
	"NONCLUSTERED": true, "NOT": true, "NULL": true,
	"ON": true, "PRIMARY": true, "REFERENCES": true, "REPLICATION": true, "SET": true,
	"TABLE": true, "UNIQUE": true, "UPDATE": true, "WITH": true,
}

func isKeyword(word string) bool {
	upper := strings.ToUpper(word)
	return keywords[upper] || dataTypes[upper]
}

func isDataType(token Token) bool {
	return token.Kind == Keyword && dataTypes[strings.ToUpper(token.Text)]
}
