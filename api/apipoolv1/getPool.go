package apipoolv1

import (
	"context"
	"net/http"

	"github.com/fulldump/box"

	"github.com/fulldump/weakpool/service"
)

func getPool(ctx context.Context) (*service.PoolSummary, error) {

	s := GetServicer(ctx)

	poolName := box.GetUrlParameter(ctx, "poolName")

	pool, err := s.GetPool(poolName)
	if err == service.ErrorPoolNotFound {
		box.GetResponse(ctx).WriteHeader(http.StatusNotFound)
		return nil, err
	}

	return pool, err
}
