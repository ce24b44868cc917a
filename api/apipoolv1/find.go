package apipoolv1

import (
	"context"
	"net/http"

	"github.com/fulldump/box"

	"github.com/fulldump/weakpool/service"
)

func find(ctx context.Context, w http.ResponseWriter, input *service.FindParams) error {

	s := GetServicer(ctx)
	poolName := box.GetUrlParameter(ctx, "poolName")

	entries, err := s.Find(poolName, input)
	if err != nil {
		w.WriteHeader(statusFor(err))
		return err
	}

	return writeEntries(w, entries)
}
