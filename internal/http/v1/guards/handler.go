package guards

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	guardcache "github.com/janisto/guardhire/internal/guards"
	applog "github.com/janisto/guardhire/internal/platform/logging"
	"github.com/janisto/guardhire/internal/platform/pagination"
	"github.com/janisto/guardhire/internal/platform/timeutil"
	"github.com/janisto/guardhire/internal/service/marketplace"
)

const cursorKind = "guard"

// Register wires the guard list endpoints. The cache must be provided by
// guardcache.Middleware. prefix is the mount point used in pagination links.
func Register(api huma.API, prefix string) {
	huma.Register(api, huma.Operation{
		OperationID: "list-guards",
		Method:      http.MethodGet,
		Path:        "/guards",
		Summary:     "List guards",
		Description: "Returns a page of the cached guard list. The list is empty while the first fetch is in flight or after a failed fetch. Use the cursor from the Link header to move between pages.",
		Tags:        []string{"Guards"},
		Errors:      []int{http.StatusBadRequest, http.StatusBadGateway},
	}, func(ctx context.Context, input *GuardsListInput) (*GuardsListPageOutput, error) {
		cursor, err := pagination.Decode(input.Cursor, cursorKind)
		if err != nil {
			return nil, huma.Error400BadRequest(err.Error())
		}

		snap := guardcache.FromContext(ctx).Snapshot()
		filtered := filterGuards(snap.Guards, input.Role, input.Location)

		limit := input.PageSize()
		page, err := pagination.Window(filtered, cursor, limit, func(g marketplace.Guard) string { return g.ID })
		switch {
		case errors.Is(err, pagination.ErrAmbiguousID):
			applog.LogWarn(ctx, "guard list cannot be paged", zap.Int("total", len(filtered)), zap.Int("limit", limit))
			return nil, huma.Error502BadGateway("the marketplace returned guards without unique identifiers")
		case err != nil:
			return nil, huma.Error400BadRequest(err.Error())
		}

		query := url.Values{}
		if input.Role != "" {
			query.Set("role", input.Role)
		}
		if input.Location != "" {
			query.Set("location", input.Location)
		}

		out := &GuardsListPageOutput{Link: page.Links(prefix+"/guards", query, limit)}
		out.Body = listOutput(page.Items, snap.Loading).Body
		out.Body.Total = page.Total
		out.Body.FetchedAt = timeutil.NewTime(snap.FetchedAt)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "refetch-guards",
		Method:      http.MethodPost,
		Path:        "/guards/refetch",
		Summary:     "Refetch guards",
		Description: "Reloads the guard list from the marketplace and returns it. A failed reload yields an empty list.",
		Tags:        []string{"Guards"},
	}, func(ctx context.Context, _ *struct{}) (*GuardsListOutput, error) {
		store := guardcache.FromContext(ctx)
		list := store.Refetch(ctx)
		snap := store.Snapshot()
		out := listOutput(list, snap.Loading)
		out.Body.FetchedAt = timeutil.NewTime(snap.FetchedAt)
		return out, nil
	})
}

func listOutput(list []marketplace.Guard, loading bool) *GuardsListOutput {
	out := make([]Guard, len(list))
	for i := range list {
		out[i] = toHTTPGuard(&list[i])
	}
	return &GuardsListOutput{Body: GuardsListData{
		Guards:  out,
		Loading: loading,
		Count:   len(out),
		Total:   len(out),
	}}
}

func filterGuards(list []marketplace.Guard, role, location string) []marketplace.Guard {
	if role == "" && location == "" {
		return list
	}
	location = strings.ToLower(location)
	return slices.DeleteFunc(slices.Clone(list), func(g marketplace.Guard) bool {
		if role != "" && g.Role != role {
			return true
		}
		return location != "" && !strings.Contains(strings.ToLower(g.Location), location)
	})
}

func toHTTPGuard(g *marketplace.Guard) Guard {
	skills := g.Skills
	if skills == nil {
		skills = []string{}
	}
	return Guard{
		ID:                g.ID,
		Name:              g.Name,
		Role:              g.Role,
		Location:          g.Location,
		HourlyRate:        g.HourlyRate,
		DailyRate:         g.DailyRate,
		MonthlyRate:       g.MonthlyRate,
		Rating:            g.Rating,
		Experience:        g.Experience,
		Skills:            skills,
		Bio:               g.Bio,
		ProfilePictureURL: g.ProfilePictureURL,
	}
}
