package record

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Extension is the structured-text extension recording files carry.
const Extension = ".json"

// filenamePrefix starts every recording filename.
const filenamePrefix = "record_"

// timestampLayout formats the seconds portion of a recording timestamp.
// The microsecond part is appended separately because Go's reference layout
// cannot express fractional seconds without a decimal point.
const timestampLayout = "20060102150405"

// Metadata captures the context of the call site that reached the recorded
// function, plus a per-record UUID. The UUID disambiguates two records
// written within the same microsecond, which the filename contract cannot.
type Metadata struct {
	RecordID     string `json:"record_id"`
	CallerFile   string `json:"caller_file"`
	CallerName   string `json:"caller_name"`
	CallerModule string `json:"caller_module,omitempty"`
}

// Arguments holds one call's inputs: ordered positional values and a
// keyword-name to value mapping. Positional order is significant; keyword
// insertion order is not.
type Arguments struct {
	Args   []Value
	Kwargs Object
}

// MarshalJSON implements json.Marshaler for Arguments.
func (a Arguments) MarshalJSON() ([]byte, error) {
	args := a.Args
	if args == nil {
		args = []Value{}
	}
	kwargs := a.Kwargs
	if kwargs == nil {
		kwargs = Object{}
	}
	return json.Marshal(struct {
		Args   []Value `json:"args"`
		Kwargs Object  `json:"kwargs"`
	}{Args: args, Kwargs: kwargs})
}

// UnmarshalJSON implements json.Unmarshaler for Arguments.
func (a *Arguments) UnmarshalJSON(data []byte) error {
	var raw struct {
		Args   []json.RawMessage `json:"args"`
		Kwargs Object            `json:"kwargs"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	a.Args = make([]Value, len(raw.Args))
	for i, rm := range raw.Args {
		val, err := UnmarshalValue(rm)
		if err != nil {
			return fmt.Errorf("args[%d]: %w", i, err)
		}
		a.Args[i] = val
	}

	a.Kwargs = raw.Kwargs
	if a.Kwargs == nil {
		a.Kwargs = Object{}
	}
	return nil
}

// Record is the persisted snapshot of one function call: inputs, outcome,
// and caller context. Immutable once written.
//
// Result is polymorphic by Success: the returned value when the call
// succeeded, the stringified error message when it failed.
type Record struct {
	Metadata     Metadata  `json:"metadata"`
	ClassName    string    `json:"class_name,omitempty"`
	FunctionName string    `json:"function_name"`
	Arguments    Arguments `json:"arguments"`
	Success      bool      `json:"success"`
	Result       Value     `json:"result"`
}

// UnmarshalJSON implements json.Unmarshaler for Record.
// Needed because Result is an interface and requires type dispatch.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw struct {
		Metadata     Metadata        `json:"metadata"`
		ClassName    string          `json:"class_name"`
		FunctionName string          `json:"function_name"`
		Arguments    Arguments       `json:"arguments"`
		Success      bool            `json:"success"`
		Result       json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	result := Value(Null{})
	if len(raw.Result) > 0 {
		var err error
		result, err = UnmarshalValue(raw.Result)
		if err != nil {
			return fmt.Errorf("result: %w", err)
		}
	}

	r.Metadata = raw.Metadata
	r.ClassName = raw.ClassName
	r.FunctionName = raw.FunctionName
	r.Arguments = raw.Arguments
	r.Success = raw.Success
	r.Result = result
	return nil
}

// Identifier returns the record's function identifier:
// "ClassName.FunctionName" for bound methods, "FunctionName" otherwise.
func (r *Record) Identifier() string {
	return Identifier(r.ClassName, r.FunctionName)
}

// Identifier builds a function identifier from an optional class name and a
// function name.
func Identifier(className, functionName string) string {
	if className == "" {
		return functionName
	}
	return className + "." + functionName
}

// Timestamp renders t in the recording filename form:
// YYYYMMDDHHMMSS followed by six microsecond digits.
func Timestamp(t time.Time) string {
	return fmt.Sprintf("%s%06d", t.Format(timestampLayout), t.Nanosecond()/1000)
}

// Filename derives the recording filename for a function identifier at a
// given time: record_<identifier>_<timestamp>.json.
//
// Uniqueness holds only while no two calls to the same identifier complete
// within the same microsecond; the store overwrites silently on collision.
func Filename(identifier string, t time.Time) string {
	return filenamePrefix + identifier + "_" + Timestamp(t) + Extension
}

// Pattern returns the glob matching every recording of an identifier.
func Pattern(identifier string) string {
	return filenamePrefix + identifier + "_*" + Extension
}

// IsRecording reports whether a filename follows the recording convention.
func IsRecording(filename string) bool {
	return strings.HasPrefix(filename, filenamePrefix) &&
		strings.HasSuffix(filename, Extension)
}

// TimestampSegment extracts the timestamp portion of a recording filename.
// This is the segment after the last underscore, without the extension, and
// serves as a short unique token for generated test names.
func TimestampSegment(filename string) string {
	name := strings.TrimSuffix(filename, Extension)
	idx := strings.LastIndex(name, "_")
	if idx < 0 {
		return name
	}
	return name[idx+1:]
}
