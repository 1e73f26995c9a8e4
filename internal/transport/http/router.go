package http

import (
	"net/http"

	"github.com/evote-api-nosql/internal/application/auth"
	"github.com/evote-api-nosql/internal/application/vote"
	"github.com/evote-api-nosql/internal/application/voter"
	"github.com/evote-api-nosql/internal/config"
	"github.com/evote-api-nosql/internal/domain"
	"github.com/evote-api-nosql/internal/transport/http/handler"
	appmiddleware "github.com/evote-api-nosql/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	// The JWT provider satisfies the signer interface directly; a nil
	// provider must become a nil interface, not a typed nil.
	var signer interface {
		Sign(legalID, role string) (string, error)
	}
	if deps.JWTProvider != nil {
		signer = deps.JWTProvider
	}

	voterSvc := voter.NewService(voter.ServiceDeps{
		VoterRepo:       deps.VoterRepo,
		EligibilityRepo: deps.EligibilityRepo,
		RosterSeeder:    deps.EligibilityRepo,
		Guard:           deps.Guard,
		Mailer:          deps.Mailer,
		EmbeddingDim:    cfg.EmbeddingDim,
	})
	authSvc := auth.NewService(auth.ServiceDeps{
		VoterRepo:         deps.VoterRepo,
		Signer:            signer,
		LoginThreshold:    cfg.LoginFaceThreshold,
		AdminUsername:     cfg.AdminUsername,
		AdminPasswordHash: cfg.AdminPasswordHash,
	})
	voteSvc := vote.NewService(vote.ServiceDeps{
		VoterRepo:     deps.VoterRepo,
		BallotRepo:    deps.BallotRepo,
		CandidateRepo: deps.CandidateRepo,
	})

	healthH := handler.NewHealthHandler()
	voterH := handler.NewVoterHandler(voterSvc)
	sessionH := handler.NewSessionHandler(authSvc)
	voteH := handler.NewVoteHandler(voteSvc)
	candidateH := handler.NewCandidateHandler(voteSvc)
	rosterH := handler.NewRosterHandler(voterSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check", healthH.Ping)
		r.Get("/candidates", candidateH.List)
		r.With(sensitiveRL.Limit).Post("/voters", voterH.Register)
		r.With(sensitiveRL.Limit).Post("/sessions/login", sessionH.Login)
		r.With(sensitiveRL.Limit).Post("/sessions/admin-login", sessionH.AdminLogin)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/voters/{legalId}", voterH.Get)
			r.With(sensitiveRL.Limit).Post("/votes", voteH.Cast)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

				r.Post("/candidates", candidateH.Create)
				r.Put("/candidates/{id}", candidateH.Update)
				r.Post("/eligible-voters", rosterH.Seed)
			})
		})
	})

	return r
}
