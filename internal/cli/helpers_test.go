package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/calltape/calltape/internal/record"
	"github.com/calltape/calltape/internal/store"
)

// seedRecordings writes a small fixed set of recordings into a fresh
// directory and returns its path: two successful add calls, one failed
// divide call, one Widget.resize method call.
func seedRecordings(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	st, err := store.Open(dir)
	require.NoError(t, err)

	base := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	seeds := []struct {
		className    string
		functionName string
		args         []record.Value
		success      bool
		result       record.Value
	}{
		{"", "add", []record.Value{record.Int(2), record.Int(3)}, true, record.Int(5)},
		{"", "add", []record.Value{record.Int(7), record.Int(8)}, true, record.Int(15)},
		{"", "divide", []record.Value{record.Int(1), record.Int(0)}, false, record.String("division by zero")},
		{"Widget", "resize", []record.Value{record.Int(100), record.Int(50)}, true, record.Null{}},
	}
	for i, s := range seeds {
		rec := &record.Record{
			Metadata: record.Metadata{
				RecordID:   "00000000-0000-0000-0000-00000000000" + string(rune('1'+i)),
				CallerFile: "app/main.go",
				CallerName: "caller",
			},
			ClassName:    s.className,
			FunctionName: s.functionName,
			Arguments:    record.Arguments{Args: s.args},
			Success:      s.success,
			Result:       s.result,
		}
		identifier := record.Identifier(s.className, s.functionName)
		filename := record.Filename(identifier, base.Add(time.Duration(i)*time.Microsecond))
		require.NoError(t, st.Write(rec, filename))
	}
	return dir
}
