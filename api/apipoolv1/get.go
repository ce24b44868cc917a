package apipoolv1

import (
	"context"
	"net/http"

	"github.com/fulldump/box"
	"github.com/go-json-experiment/json"

	"github.com/fulldump/weakpool/service"
)

type getRequest struct {
	Group string `json:"group"`
}

// get streams the live entries of a group as JSON lines, in add order.
func get(ctx context.Context, w http.ResponseWriter, input *getRequest) error {

	s := GetServicer(ctx)
	poolName := box.GetUrlParameter(ctx, "poolName")

	entries, err := s.Get(poolName, input.Group)
	if err != nil {
		w.WriteHeader(statusFor(err))
		return err
	}

	return writeEntries(w, entries)
}

// writeEntries answers 200 even when there is nothing to write.
func writeEntries(w http.ResponseWriter, entries []*service.Entry) error {
	w.WriteHeader(http.StatusOK)
	for _, entry := range entries {
		err := json.MarshalWrite(w, entry, json.Deterministic(true))
		if err != nil {
			return err
		}
		w.Write([]byte("\n"))
	}
	return nil
}
