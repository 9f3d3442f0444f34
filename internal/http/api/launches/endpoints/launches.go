package endpoints

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/launches/internal/http/api"
	"github.com/Nixie-Tech-LLC/launches/internal/http/api/launches/packets"
	"github.com/Nixie-Tech-LLC/launches/internal/launchapi"
	"github.com/Nixie-Tech-LLC/launches/internal/model"
)

// descriptionPolicy keeps basic formatting in description fields and drops
// anything a consumer inserting them as HTML would execute.
var descriptionPolicy = bluemonday.UGCPolicy()

type LaunchController struct {
	api launchapi.Fetcher
}

func newLaunchController(fetcher launchapi.Fetcher) *LaunchController {
	return &LaunchController{api: fetcher}
}

// LaunchModule mounts the JSON proxy over the launch library.
func LaunchModule(fetcher launchapi.Fetcher) api.Module {
	ctl := newLaunchController(fetcher)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/launches/:id", api.ResolveEndpoint(ctl.getLaunch))
		c.GET("/launches", api.ResolveEndpoint(ctl.searchLaunches))
	})
}

func (l *LaunchController) getLaunch(ctx *gin.Context) (any, *api.APIError) {
	id := strings.TrimSpace(ctx.Param("id"))

	launch, err := l.api.GetLaunch(ctx.Request.Context(), id)
	if errors.Is(err, launchapi.ErrEmptyID) {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to fetch launch")
		return nil, &api.APIError{Code: http.StatusBadGateway, Message: "could not fetch launch"}
	}
	if launch == nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "not found"}
	}

	return toLaunchResponse(launch), nil
}

func (l *LaunchController) searchLaunches(ctx *gin.Context) (any, *api.APIError) {
	query := strings.TrimSpace(ctx.Query("search"))

	all, err := l.api.SearchLaunches(ctx.Request.Context(), query)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("failed to search launches")
		return nil, &api.APIError{Code: http.StatusBadGateway, Message: "could not search launches"}
	}

	out := make([]packets.LaunchSummaryResponse, 0, len(all))
	for _, x := range all {
		item := packets.LaunchSummaryResponse{
			ID:          x.ID,
			Name:        x.Name,
			WindowStart: x.WindowStart,
		}
		if x.Status != nil {
			item.Status = &packets.StatusResponse{
				Name:        x.Status.Name,
				Description: descriptionPolicy.Sanitize(x.Status.Description),
			}
		}
		out = append(out, item)
	}

	return packets.SearchResponse{Query: query, Count: len(out), Results: out}, nil
}

func toLaunchResponse(x *model.Launch) packets.LaunchResponse {
	resp := packets.LaunchResponse{
		ID:          x.ID,
		Name:        x.Name,
		WindowStart: x.WindowStart,
		WindowEnd:   x.WindowEnd,
		Status: packets.StatusResponse{
			Name:        x.Status.Name,
			Description: descriptionPolicy.Sanitize(x.Status.Description),
		},
		Image: x.Image,
	}
	if x.Mission != nil {
		resp.Mission = &packets.MissionResponse{
			Name:        x.Mission.Name,
			Description: descriptionPolicy.Sanitize(x.Mission.Description),
		}
	}
	return resp
}
