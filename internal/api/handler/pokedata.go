package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/albapepper/pokedata/internal/api/respond"
	"github.com/albapepper/pokedata/internal/cache"
	"github.com/albapepper/pokedata/internal/catalog"
	"github.com/albapepper/pokedata/internal/config"
	"github.com/albapepper/pokedata/internal/numparse"
	"github.com/albapepper/pokedata/internal/ranking"
)

// PokeData is one element of the /api/pokedata/ response.
type PokeData struct {
	ID       int              `json:"id"`
	Name     *string          `json:"name,omitempty"`
	Type     json.RawMessage  `json:"type,omitempty" swaggertype:"array,integer"`
	BaseStat catalog.BaseStat `json:"base_stat"`
}

// pokeDataRequest is everything one request reads, loaded once and then
// only read while shaping the response.
type pokeDataRequest struct {
	catalog *catalog.Catalog
	ranking []ranking.Entry
}

// GetPokeData returns the top of the doubles usage ranking joined with
// names, types and base stats.
// @Summary Get Pokemon base stats
// @Description Returns the first `limit` entries of the latest double-battle usage ranking, each with name, type list and base stats. A missing or non-numeric limit falls back to 30.
// @Tags Pokemon
// @Produce json
// @Param limit query int false "Maximum number of items to return" default(30)
// @Success 200 {array} PokeData
// @Failure 500 {object} respond.CodeResponse
// @Router /api/pokedata/ [get]
func (h *Handler) GetPokeData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit := ParseLimit(r.URL.Query().Get("limit"), h.defaultLimit)

	req, err := h.loadPokeData(ctx)
	if err != nil {
		h.logger.Error("Reference data load failed", "error", err)
		respond.WriteCode(w, http.StatusInternalServerError, respond.CodeReferenceNotFound)
		return
	}
	if req.ranking == nil {
		respond.WriteCode(w, http.StatusInternalServerError, respond.CodeRankingNotFound)
		return
	}

	entries := firstN(req.ranking, limit)
	out := make([]PokeData, 0, len(entries))
	for _, e := range entries {
		out = append(out, req.join(e))
	}
	respond.WriteJSONObject(w, http.StatusOK, out)
}

func (h *Handler) loadPokeData(ctx context.Context) (pokeDataRequest, error) {
	cat, err := catalog.LoadAll(ctx, h.store)
	if err != nil {
		return pokeDataRequest{}, err
	}
	entries := cache.Get(ctx, h.rankings, config.KeyRanking, h.source.LatestUsageRanking)
	return pokeDataRequest{catalog: cat, ranking: entries}, nil
}

func (p pokeDataRequest) join(e ranking.Entry) PokeData {
	out := PokeData{
		ID:       e.ID,
		Type:     p.catalog.TypesOf(e.ID, e.Form),
		BaseStat: p.catalog.BaseStat(e.ID, e.Form),
	}
	if name, ok := p.catalog.Name(e.ID); ok {
		out.Name = &name
	}
	return out
}

// ParseLimit reads the limit query value. Missing or non-numeric input
// yields def; a numeric value is truncated to its leading integer ("2.9"
// is 2, "0x10" is 0), numeric input without one ("  ", "Infinity") is 0,
// and values past the int range saturate.
func ParseLimit(raw string, def int) int {
	if raw == "" || !numparse.IsNumeric(raw) {
		return def
	}
	n, ok := numparse.LeadingInt(raw)
	if !ok {
		return 0
	}
	return n
}

// firstN returns the first n entries. A negative n drops that many from
// the end.
func firstN(entries []ranking.Entry, n int) []ranking.Entry {
	if n < 0 {
		n += len(entries)
		if n < 0 {
			n = 0
		}
	}
	if n > len(entries) {
		n = len(entries)
	}
	return entries[:n]
}
