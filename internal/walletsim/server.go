package walletsim

import (
	"net/http"

	"go.uber.org/zap"

	"walletlink/internal/domain"
)

// Handler serves the universal-link endpoints under /ul/v1/.
func (w *Wallet) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ul/v1/{action}", w.handleAction)
	mux.HandleFunc("GET /healthz", func(rw http.ResponseWriter, _ *http.Request) {
		rw.WriteHeader(http.StatusOK)
	})
	return mux
}

func (w *Wallet) handleAction(rw http.ResponseWriter, r *http.Request) {
	action := domain.Action(r.PathValue("action"))
	back, err := w.Respond(action, r.URL.Query())
	if err != nil {
		w.log.Warn("cannot redirect back", zap.String("action", action.String()), zap.Error(err))
		http.Error(rw, err.Error(), http.StatusBadRequest)
		return
	}
	http.Redirect(rw, r, back.String(), http.StatusFound)
}
