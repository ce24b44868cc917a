package apipoolv1

import (
	"context"
	"net/http"

	"github.com/fulldump/box"

	"github.com/fulldump/weakpool/database"
)

func getObject(ctx context.Context, w http.ResponseWriter) (*database.Object, error) {

	s := GetServicer(ctx)
	objectId := box.GetUrlParameter(ctx, "objectId")

	object, err := s.GetObject(objectId)
	if err != nil {
		w.WriteHeader(statusFor(err))
		return nil, err
	}

	return object, nil
}
