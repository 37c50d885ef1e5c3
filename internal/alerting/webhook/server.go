// Package webhook receives pre-parsed push notifications and routes
// them into the shared alert path. A push payload already names the
// token, so no classification happens here, only wallet filtering and
// dedup.
package webhook

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"launchwatch/internal/alerting/metrics"
	"launchwatch/internal/core/domain"
	"launchwatch/internal/infra/storage"
)

// CandidateHandler is the shared dedup and dispatch entry point.
type CandidateHandler interface {
	HandleCandidate(
		ctx context.Context,
		source string,
		wallet string,
		chatID int64,
		signature string,
		cand *domain.TokenCandidate,
		md domain.TokenMetadata,
	) error
}

// Handler serves the push transport endpoint.
type Handler struct {
	wallets storage.WalletRepository
	sink    CandidateHandler
	log     *slog.Logger
}

// NewHandler creates a webhook handler.
func NewHandler(wallets storage.WalletRepository, sink CandidateHandler, log *slog.Logger) *Handler {
	return &Handler{wallets: wallets, sink: sink, log: log}
}

// ServeHTTP handles POST /webhook. Provider push services batch events
// into a JSON array; each event carries its token transfers inline.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	requestID := uuid.NewString()
	log := h.log.With("request_id", requestID)

	var events []domain.PushEvent
	if err := json.NewDecoder(r.Body).Decode(&events); err != nil {
		log.Warn("failed to decode webhook payload", "error", err)
		metrics.WebhookEvents.WithLabelValues("malformed").Inc()
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	watches, err := h.wallets.GetAll(r.Context())
	if err != nil {
		log.Error("failed to load wallet watches", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	watched := make(map[string]*domain.WalletWatch, len(watches))
	for _, wt := range watches {
		watched[wt.Address] = wt
	}

	for _, event := range events {
		h.processEvent(r.Context(), log, &event, watched)
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) processEvent(
	ctx context.Context,
	log *slog.Logger,
	event *domain.PushEvent,
	watched map[string]*domain.WalletWatch,
) {
	matched := false
	for _, t := range event.TokenTransfers {
		wt, ok := watched[t.ToUserAccount]
		if !ok {
			continue
		}
		if t.Mint == "" || t.Amount <= 0 {
			continue
		}
		matched = true

		cand := &domain.TokenCandidate{Mint: t.Mint, UIAmount: t.Amount}
		md := domain.TokenMetadata{Name: t.TokenName, Symbol: t.TokenSymbol}

		if err := h.sink.HandleCandidate(ctx, "webhook", wt.Address, wt.ChatID, event.Signature, cand, md); err != nil {
			log.Warn("failed to handle push candidate",
				"signature", event.Signature, "mint", t.Mint, "error", err)
		}
	}

	if matched {
		metrics.WebhookEvents.WithLabelValues("matched").Inc()
	} else {
		metrics.WebhookEvents.WithLabelValues("ignored").Inc()
	}
}
