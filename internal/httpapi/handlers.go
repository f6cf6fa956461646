package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/spotit-game/spotit-backend/internal/registry"
)

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// Stats reports how many rooms are live; handy for dashboards and smoke
// checks, carries no room contents.
func Stats(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reply := make(chan int, 1)
		reg.Inbox() <- registry.GetCount{Reply: reply}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(struct {
			Rooms int `json:"rooms"`
		}{Rooms: <-reply})
	}
}
