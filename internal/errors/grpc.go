package errors

import (
	"encoding/json"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// detailCodeKey holds the original code inside the status details, since
// several codes could share a gRPC code in the future
const detailCodeKey = "code"

// ToGRPCError converts an error to a gRPC status error. Metadata travels as
// a structpb.Struct detail.
func ToGRPCError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var e *Error
	if !errors.As(err, &e) {
		return status.Error(codes.Internal, err.Error())
	}

	st := status.New(e.Code.GRPCCode(), e.Message)
	if details := metaDetails(e); details != nil {
		if withDetails, detailErr := st.WithDetails(details); detailErr == nil {
			st = withDetails
		}
	}
	return st.Err()
}

// FromGRPCError turns a status error from the API back into an *Error
func FromGRPCError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	e := &Error{
		Code:    codeFromGRPC(st.Code()),
		Message: st.Message(),
	}
	for _, detail := range st.Details() {
		details, ok := detail.(*structpb.Struct)
		if !ok {
			continue
		}
		meta := details.AsMap()
		if code, ok := meta[detailCodeKey].(string); ok {
			e.Code = Code(code)
			delete(meta, detailCodeKey)
		}
		if len(meta) > 0 {
			e.Meta = meta
		}
		break
	}
	return e
}

func metaDetails(e *Error) *structpb.Struct {
	fields := map[string]any{detailCodeKey: string(e.Code)}
	for k, v := range e.Meta {
		fields[k] = v
	}

	details, err := structpb.NewStruct(fields)
	if err == nil {
		return details
	}

	// Typed values such as map[string][]string need a JSON pass first
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil
	}
	details = &structpb.Struct{}
	if err := protojson.Unmarshal(raw, details); err != nil {
		return nil
	}
	return details
}
