package api

import (
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ErrMalformed is returned when a message is missing a field or carries
// a field of the wrong kind.
var ErrMalformed = errors.New("malformed message")

// File type names carried in Attributes.Type and DirEntry.Type.
const (
	TypeRegular   = "regular"
	TypeDirectory = "directory"
)

// Attributes is the GetAttr response.
//
//	{"type": string, "mode": number, "size": number, "nlink": number, "mtime": string}
//
// mtime is RFC 3339 with nanoseconds.
type Attributes struct {
	Type  string
	Mode  uint32
	Size  int64
	Nlink uint32
	Mtime string
}

// ToProto encodes the attributes.
func (a Attributes) ToProto() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"type":  structpb.NewStringValue(a.Type),
		"mode":  structpb.NewNumberValue(float64(a.Mode)),
		"size":  structpb.NewNumberValue(float64(a.Size)),
		"nlink": structpb.NewNumberValue(float64(a.Nlink)),
		"mtime": structpb.NewStringValue(a.Mtime),
	}}
}

// AttributesFromProto decodes a GetAttr response.
func AttributesFromProto(s *structpb.Struct) (Attributes, error) {
	var a Attributes
	var err error
	if a.Type, err = stringField(s, "type"); err != nil {
		return Attributes{}, err
	}
	mode, err := intField(s, "mode")
	if err != nil {
		return Attributes{}, err
	}
	if a.Size, err = intField(s, "size"); err != nil {
		return Attributes{}, err
	}
	nlink, err := intField(s, "nlink")
	if err != nil {
		return Attributes{}, err
	}
	if a.Mtime, err = stringField(s, "mtime"); err != nil {
		return Attributes{}, err
	}
	a.Mode = uint32(mode)
	a.Nlink = uint32(nlink)
	return a, nil
}

// DirEntry is one element of the ReadDir response list.
//
//	{"name": string, "type": string}
type DirEntry struct {
	Name string
	Type string
}

// DirEntriesToProto encodes a ReadDir response.
func DirEntriesToProto(entries []DirEntry) *structpb.ListValue {
	list := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(entries))}
	for _, e := range entries {
		list.Values = append(list.Values, structpb.NewStructValue(&structpb.Struct{
			Fields: map[string]*structpb.Value{
				"name": structpb.NewStringValue(e.Name),
				"type": structpb.NewStringValue(e.Type),
			},
		}))
	}
	return list
}

// DirEntriesFromProto decodes a ReadDir response.
func DirEntriesFromProto(list *structpb.ListValue) ([]DirEntry, error) {
	entries := make([]DirEntry, 0, len(list.GetValues()))
	for i, v := range list.GetValues() {
		s := v.GetStructValue()
		if s == nil {
			return nil, fmt.Errorf("%w: entry %d is not a struct", ErrMalformed, i)
		}
		name, err := stringField(s, "name")
		if err != nil {
			return nil, err
		}
		typ, err := stringField(s, "type")
		if err != nil {
			return nil, err
		}
		entries = append(entries, DirEntry{Name: name, Type: typ})
	}
	return entries, nil
}

// ReadRequest is the Read request.
//
//	{"path": string, "offset": number, "length": number}
type ReadRequest struct {
	Path   string
	Offset int64
	Length int64
}

// ToProto encodes the request.
func (r ReadRequest) ToProto() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"path":   structpb.NewStringValue(r.Path),
		"offset": structpb.NewNumberValue(float64(r.Offset)),
		"length": structpb.NewNumberValue(float64(r.Length)),
	}}
}

// ReadRequestFromProto decodes a Read request.
func ReadRequestFromProto(s *structpb.Struct) (ReadRequest, error) {
	var r ReadRequest
	var err error
	if r.Path, err = stringField(s, "path"); err != nil {
		return ReadRequest{}, err
	}
	if r.Offset, err = intField(s, "offset"); err != nil {
		return ReadRequest{}, err
	}
	if r.Length, err = intField(s, "length"); err != nil {
		return ReadRequest{}, err
	}
	return r, nil
}

// XattrRequest is the GetXattr request.
//
//	{"path": string, "name": string}
type XattrRequest struct {
	Path string
	Name string
}

// ToProto encodes the request.
func (r XattrRequest) ToProto() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"path": structpb.NewStringValue(r.Path),
		"name": structpb.NewStringValue(r.Name),
	}}
}

// XattrRequestFromProto decodes a GetXattr request.
func XattrRequestFromProto(s *structpb.Struct) (XattrRequest, error) {
	var r XattrRequest
	var err error
	if r.Path, err = stringField(s, "path"); err != nil {
		return XattrRequest{}, err
	}
	if r.Name, err = stringField(s, "name"); err != nil {
		return XattrRequest{}, err
	}
	return r, nil
}

// NamesToProto encodes a ListXattr response.
func NamesToProto(names []string) *structpb.ListValue {
	list := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(names))}
	for _, n := range names {
		list.Values = append(list.Values, structpb.NewStringValue(n))
	}
	return list
}

// NamesFromProto decodes a ListXattr response.
func NamesFromProto(list *structpb.ListValue) ([]string, error) {
	names := make([]string, 0, len(list.GetValues()))
	for i, v := range list.GetValues() {
		s, ok := v.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, fmt.Errorf("%w: name %d is not a string", ErrMalformed, i)
		}
		names = append(names, s.StringValue)
	}
	return names, nil
}

// Path wraps a path for the single-path requests.
func Path(path string) *wrapperspb.StringValue {
	return wrapperspb.String(path)
}

func stringField(s *structpb.Struct, key string) (string, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return "", fmt.Errorf("%w: missing %q", ErrMalformed, key)
	}
	str, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("%w: %q is not a string", ErrMalformed, key)
	}
	return str.StringValue, nil
}

func intField(s *structpb.Struct, key string) (int64, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return 0, fmt.Errorf("%w: missing %q", ErrMalformed, key)
	}
	num, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%w: %q is not a number", ErrMalformed, key)
	}
	f := num.NumberValue
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.Abs(f) > 1<<53 {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrMalformed, key)
	}
	return int64(f), nil
}
