package httpsrv

import (
	"encoding/json"
	"net/http"

	"github.com/khmm12/hostscan/internal/ports"
)

// HostsFunc returns the hosts of the last scan in the requested order.
type HostsFunc func(order string) []ports.Host

// HostsHandler serves the collected hosts as JSON. The optional "sort" query
// parameter selects the order and defaults to "numeric".
func HostsHandler(hosts HostsFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order := r.URL.Query().Get("sort")

		switch order {
		case "":
			order = "numeric"
		case "numeric", "lexical":
		default:
			http.Error(w, "unknown sort order: "+order, http.StatusBadRequest)
			return
		}

		list := hosts(order)
		if list == nil {
			list = []ports.Host{}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(list)
	}
}
