package apipoolv1

import (
	"context"
	"net/http"

	"github.com/fulldump/box"

	"github.com/fulldump/weakpool/weakpool"
)

func stats(ctx context.Context, w http.ResponseWriter) (*weakpool.Stats, error) {

	s := GetServicer(ctx)
	poolName := box.GetUrlParameter(ctx, "poolName")

	result, err := s.Stats(poolName)
	if err != nil {
		w.WriteHeader(statusFor(err))
		return nil, err
	}

	return result, nil
}
