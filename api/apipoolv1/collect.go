package apipoolv1

import (
	"context"
)

func collect(ctx context.Context) {
	GetServicer(ctx).Collect()
}
