package stage

import "context"

const (
	luaFilterStage = "lua-filter"
	luaMapStage    = "lua-map"
)

func luaFilterRunner(ctx context.Context, in Envelope, deps Deps) (Envelope, error) {
	if !deps.Scripts.Enabled() || deps.Scripts.Filter == "" {
		return in, nil
	}
	rows, err := deps.Scripts.ApplyFilter(ctx, in.Table.Headers, in.Table.Rows)
	if err != nil {
		return Envelope{}, err
	}
	out := in
	out.Table.Rows = rows
	return out, nil
}

func luaMapRunner(ctx context.Context, in Envelope, deps Deps) (Envelope, error) {
	if !deps.Scripts.Enabled() || deps.Scripts.Map == "" {
		return in, nil
	}
	rows, err := deps.Scripts.ApplyMap(ctx, in.Table.Headers, in.Table.Rows)
	if err != nil {
		return Envelope{}, err
	}
	out := in
	out.Table.Rows = rows
	return out, nil
}

func init() {
	Register(luaFilterStage, luaFilterRunner)
	Register(luaMapStage, luaMapRunner)
}
