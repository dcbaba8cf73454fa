package mapping

import "github.com/rezonia/earsiv-client/internal/model"

// Merge deep-merges patch into base and returns a new record; neither
// input is mutated. Nested records merge recursively, any other patch
// value (including lists) replaces the base value wholesale.
func Merge(base, patch model.Record) model.Record {
	out := make(model.Record, len(base)+len(patch))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range patch {
		pv, pok := v.(map[string]any)
		bv, bok := out[k].(map[string]any)
		if pok && bok {
			out[k] = Merge(bv, pv)
			continue
		}
		out[k] = v
	}
	return out
}
