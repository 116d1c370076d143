package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"marketScope/internal/chain"
	"marketScope/internal/markettable"
	"marketScope/internal/notify"
	"marketScope/internal/storage"
)

// MetadataFunc resolves the pool metadata of a chain.
type MetadataFunc func(id chain.ChainID) (chain.Metadata, error)

// Controller serves market tables over HTTP.
type Controller struct {
	Source     storage.PoolSource
	Metadata   MetadataFunc
	Routes     markettable.Routes
	Collateral *markettable.CollateralHandler
	Display    *notify.Display
	Logger     *zap.Logger
}

// NewRouter returns a router with every route of the controller.
func (c *Controller) NewRouter() *mux.Router {
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.Metadata == nil {
		c.Metadata = chain.GetMetadata
	}

	r := mux.NewRouter()
	r.HandleFunc("/health", c.HandleHealth).Methods(http.MethodGet)
	r.HandleFunc("/chains", c.HandleChains).Methods(http.MethodGet)
	r.HandleFunc("/chains/{id}/markets", c.HandleMarkets).Methods(http.MethodGet)
	r.HandleFunc("/chains/{id}/markets/{vToken}/collateral", c.HandleCollateral).Methods(http.MethodPost)
	r.HandleFunc("/chains/{id}/markets/{vToken}/account-data", c.HandleAccountData).Methods(http.MethodGet)
	r.HandleFunc("/errors", c.HandleErrors).Methods(http.MethodGet)
	return r
}

// HandleHealth reports liveness.
func (c *Controller) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type chainOption struct {
	ChainID     chain.ChainID `json:"chain_id"`
	Label       string        `json:"label"`
	ButtonLabel string        `json:"button_label"`
}

// HandleChains lists the chain switcher options.
// GET /chains
func (c *Controller) HandleChains(w http.ResponseWriter, _ *http.Request) {
	options := chain.SelectOptions()
	out := make([]chainOption, 0, len(options))
	for _, option := range options {
		out = append(out, chainOption{
			ChainID:     option.Value,
			Label:       option.Label.String(),
			ButtonLabel: option.Label.Resolve(uiButton),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleErrors lists recent mutation errors.
// GET /errors
func (c *Controller) HandleErrors(w http.ResponseWriter, _ *http.Request) {
	if c.Display == nil {
		writeJSON(w, http.StatusOK, []notify.Notice{})
		return
	}
	writeJSON(w, http.StatusOK, c.Display.Recent())
}

func (c *Controller) chainMetadata(r *http.Request) (chain.Metadata, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return chain.Metadata{}, err
	}
	return c.Metadata(chain.ChainID(id))
}

func splitList(input string) []string {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
