package apipoolv1

import (
	"context"

	"github.com/fulldump/weakpool/service"
)

func listPools(ctx context.Context) ([]*service.PoolSummary, error) {
	return GetServicer(ctx).ListPools()
}
