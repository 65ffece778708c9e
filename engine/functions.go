package engine

import (
	"database/sql"
	"database/sql/driver"
	"fmt"

	sqlite "modernc.org/sqlite"

	"github.com/viant/semsearch/vector"
)

// RegisterVectorFunctions registers vec_cosine and vec_l2 with the driver so
// they are available on new connections opened after this call.
// Note: existing open connections will not see new functions.
func RegisterVectorFunctions(_ *sql.DB) error {
	// Idempotent registration; driver rejects duplicates but we ignore errors silently here.
	_ = sqlite.RegisterDeterministicScalarFunction("vec_cosine", 2, vecCosineImpl)
	_ = sqlite.RegisterDeterministicScalarFunction("vec_l2", 2, vecL2Impl)
	return nil
}

func asEmbedding(arg driver.Value) ([]float32, error) {
	switch v := arg.(type) {
	case nil:
		return nil, nil
	case []byte:
		return vector.DecodeEmbedding(v)
	default:
		return nil, fmt.Errorf("engine: unsupported argument type %T for embedding; want BLOB", arg)
	}
}

func vecCosineImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("vec_cosine: expected 2 arguments, got %d", len(args))
	}
	a, err := asEmbedding(args[0])
	if err != nil {
		return nil, err
	}
	b, err := asEmbedding(args[1])
	if err != nil {
		return nil, err
	}
	if a == nil || b == nil {
		return nil, nil
	}
	// Engine semantics apply: zero-magnitude operands score 0 rather than
	// erroring, matching in-memory ranking.
	sim, err := vector.Cosine(a, b)
	if err != nil {
		return nil, err
	}
	return sim, nil
}

func vecL2Impl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("vec_l2: expected 2 arguments, got %d", len(args))
	}
	a, err := asEmbedding(args[0])
	if err != nil {
		return nil, err
	}
	b, err := asEmbedding(args[1])
	if err != nil {
		return nil, err
	}
	if a == nil || b == nil {
		return nil, nil
	}
	d, err := vector.L2Distance(a, b)
	if err != nil {
		return nil, err
	}
	return d, nil
}
