package presence

import (
	"context"
	"encoding/json"
	"errors"
	"io"
)

// UnmarshalAndCheck decodes JSON from b into dst, normalizes it, then runs [Check].
// If dst implements Normalizer, normalization recurses (top level first, then
// nested structs, slices, maps) before the check.
func UnmarshalAndCheck(b []byte, dst any) error {
	return UnmarshalAndCheckCtx(context.Background(), b, dst)
}

// UnmarshalAndCheckCtx is like UnmarshalAndCheck but passes a context to
// ContextNormalizer.Normalize.
func UnmarshalAndCheckCtx(ctx context.Context, b []byte, dst any) error {
	if err := json.Unmarshal(b, dst); err != nil {
		return err
	}
	normalizeRecursive(ctx, dst)
	return Check(dst)
}

// DecodeAndCheck reads JSON from r into dst using a streaming decoder, then
// normalizes and checks. Use this instead of [UnmarshalAndCheck] when reading
// directly from an [io.Reader] such as an HTTP request body. An empty body
// decodes to the zero value, so its mandatory fields are reported as absent.
func DecodeAndCheck(r io.Reader, dst any) error {
	return DecodeAndCheckCtx(context.Background(), r, dst)
}

// DecodeAndCheckCtx is like DecodeAndCheck but passes a context to
// ContextNormalizer.Normalize.
func DecodeAndCheckCtx(ctx context.Context, r io.Reader, dst any) error {
	if err := json.NewDecoder(r).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	normalizeRecursive(ctx, dst)
	return Check(dst)
}
