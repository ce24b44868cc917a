package apipoolv1

import (
	"context"

	"github.com/fulldump/weakpool/service"
)

const ContextServicerKey = "4b1e43d2-7a0f-11f0-9c1d-2f6a8e0b5c77"

func SetServicer(ctx context.Context, s service.Servicer) context.Context {
	return context.WithValue(ctx, ContextServicerKey, s)
}

func GetServicer(ctx context.Context) service.Servicer {
	return ctx.Value(ContextServicerKey).(service.Servicer)
}
