package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Jakes-stx/AstraVault/internal/core/application"
	"github.com/Jakes-stx/AstraVault/internal/infrastructure/tick"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
)

// Service hosts the HTTP surface of the vault engine.
type Service struct {
	server *http.Server
}

// NewService wires the handler set onto a chi router. When the deployment
// drives time manually, a non-nil manual tick source enables the admin
// endpoint that advances it.
func NewService(
	port uint32, appSvc application.Service, manualTicks *tick.Manual,
) *Service {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	h := newHandler(appSvc)

	router.Route("/v1", func(r chi.Router) {
		r.Post("/vaults", h.createVault)
		r.Get("/vaults/{vaultID}", h.getVault)
		r.Post("/vaults/{vaultID}/heartbeat", h.touchActivity)
		r.Get("/vaults/{vaultID}/remaining", h.remainingInactivityTicks)

		r.Post("/vaults/{vaultID}/assets/native", h.addNativeAsset)
		r.Post("/vaults/{vaultID}/assets/fungible", h.addFungibleAsset)
		r.Post("/vaults/{vaultID}/assets/nonfungible", h.addNonFungibleAsset)
		r.Post("/vaults/{vaultID}/assets/external", h.addExternalAsset)
		r.Get("/vaults/{vaultID}/assets/{assetID}", h.getAsset)
		r.Post("/vaults/{vaultID}/assets/{assetID}/claim", h.claim)

		r.Post("/vaults/{vaultID}/beneficiaries", h.addBeneficiary)
		r.Get("/vaults/{vaultID}/beneficiaries/{principal}", h.getBeneficiary)
		r.Post("/vaults/{vaultID}/sign", h.signForClaim)

		r.Get("/owners/{owner}/vault", h.getVaultByOwner)

		if manualTicks != nil {
			r.Post("/admin/tick", advanceTickHandler(manualTicks))
		}
	})

	return &Service{
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		},
	}
}

func (s *Service) Start() error {
	go func() {
		if err := s.server.ListenAndServe(); err != nil &&
			err != http.ErrServerClosed {
			log.WithError(err).Fatal("http server exited")
		}
	}()
	return nil
}

func (s *Service) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	// nolint
	s.server.Shutdown(ctx)
}

type advanceTickRequest struct {
	Ticks uint64 `json:"ticks"`
}

func advanceTickHandler(source *tick.Manual) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req advanceTickRequest
		if !decode(w, r, &req) {
			return
		}
		current := source.Advance(req.Ticks)
		writeJSON(w, http.StatusOK, map[string]uint64{"tick": current})
	}
}
