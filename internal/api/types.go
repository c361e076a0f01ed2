package api

import (
	"fmt"
	"time"

	"github.com/stowage-io/stowage/internal/maritime"
	"github.com/stowage-io/stowage/internal/packing"
	"github.com/stowage-io/stowage/internal/storage"
)

type itemRequest struct {
	Name        string   `json:"name"`
	Width       float64  `json:"width"`
	Height      float64  `json:"height"`
	Depth       float64  `json:"depth"`
	Weight      float64  `json:"weight"`
	Quantity    int      `json:"quantity,omitempty"`
	Rotations   []string `json:"rotations,omitempty"`
	HazardClass string   `json:"hazardClass,omitempty"`
}

type maritimeRequest struct {
	TareWeight            float64 `json:"tareWeight"`
	MaxGrossWeight        float64 `json:"maxGrossWeight"`
	LongitudinalTolerance float64 `json:"longitudinalTolerance"`
	VerticalTolerance     float64 `json:"verticalTolerance"`
}

type containerRequest struct {
	ID       string           `json:"id"`
	Width    float64          `json:"width"`
	Height   float64          `json:"height"`
	Depth    float64          `json:"depth"`
	Capacity float64          `json:"capacity"`
	Maritime *maritimeRequest `json:"maritime,omitempty"`
}

type packRequest struct {
	Items           []itemRequest      `json:"items"`
	Containers      []containerRequest `json:"containers"`
	MinSupportRatio *float64           `json:"minSupportRatio,omitempty"`
}

type placementResponse struct {
	Item     string         `json:"item"`
	Instance int            `json:"instance"`
	Placed   bool           `json:"placed"`
	BinID    string         `json:"binId,omitempty"`
	Origin   *packing.Vector `json:"origin,omitempty"`
	Rotation string         `json:"rotation,omitempty"`
	Reason   string         `json:"reason,omitempty"`
}

type binResponse struct {
	ID              string   `json:"id"`
	PlacedCount     int      `json:"placedCount"`
	PlacedWeight    float64  `json:"placedWeight"`
	RemainingWeight float64  `json:"remainingWeight"`
	UsedVolume      float64  `json:"usedVolume"`
	RemainingVolume float64  `json:"remainingVolume"`
	GrossWeight     *float64 `json:"grossWeight,omitempty"`
}

type packResponse struct {
	RunID       string              `json:"runId"`
	Results     []placementResponse `json:"results"`
	Bins        []binResponse       `json:"bins"`
	PackedCount int                 `json:"packedCount"`
	UnfitCount  int                 `json:"unfitCount"`
	DurationMs  int64               `json:"durationMs"`
}

type rulesRequest struct {
	Rules []storage.SegregationRule `json:"rules"`
}

type rulesResponse struct {
	Rules     []storage.SegregationRule `json:"rules"`
	UpdatedAt time.Time                 `json:"updatedAt"`
	Message   string                    `json:"message,omitempty"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// buildItems converts item descriptors into engine items, surfacing the first
// validation failure with its position in the request.
func buildItems(reqs []itemRequest) ([]*packing.Item, error) {
	items := make([]*packing.Item, 0, len(reqs))
	for i, req := range reqs {
		name := req.Name
		if name == "" {
			name = fmt.Sprintf("item-%d", i+1)
		}
		opts := make([]packing.ItemOption, 0, 3)
		if req.Quantity > 0 {
			opts = append(opts, packing.WithQuantity(req.Quantity))
		}
		if req.HazardClass != "" {
			opts = append(opts, packing.WithHazardClass(req.HazardClass))
		}
		if len(req.Rotations) > 0 {
			rotations := make([]packing.Rotation, 0, len(req.Rotations))
			for _, raw := range req.Rotations {
				rotation, ok := packing.ParseRotation(raw)
				if !ok {
					return nil, fmt.Errorf("item %q: unknown rotation %q", name, raw)
				}
				rotations = append(rotations, rotation)
			}
			opts = append(opts, packing.WithRotations(rotations...))
		}
		item, err := packing.NewItem(name, req.Width, req.Height, req.Depth, req.Weight, opts...)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// buildContainers converts container descriptors into engine containers.
// Descriptors with a maritime section become maritime containers backed by the
// given segregation table.
func buildContainers(reqs []containerRequest, table *maritime.SegregationTable) ([]packing.Container, error) {
	containers := make([]packing.Container, 0, len(reqs))
	for i, req := range reqs {
		id := req.ID
		if id == "" {
			id = fmt.Sprintf("bin-%d", i+1)
		}
		if req.Maritime == nil {
			bin, err := packing.NewBin(id, req.Width, req.Height, req.Depth, req.Capacity)
			if err != nil {
				return nil, err
			}
			containers = append(containers, bin)
			continue
		}
		cfg := maritime.Config{
			TareWeight:            req.Maritime.TareWeight,
			MaxGrossWeight:        req.Maritime.MaxGrossWeight,
			LongitudinalTolerance: req.Maritime.LongitudinalTolerance,
			VerticalTolerance:     req.Maritime.VerticalTolerance,
		}
		container, err := maritime.NewContainer(id, req.Width, req.Height, req.Depth, req.Capacity, cfg, table)
		if err != nil {
			return nil, err
		}
		containers = append(containers, container)
	}
	return containers, nil
}

func placementResponses(results []packing.Result) ([]placementResponse, int, int) {
	out := make([]placementResponse, 0, len(results))
	packed, unfit := 0, 0
	for _, res := range results {
		resp := placementResponse{
			Item:     res.Item.Name(),
			Instance: res.Instance,
			Placed:   res.Placed,
		}
		if res.Placed {
			packed++
			origin := res.Origin
			resp.BinID = res.BinID
			resp.Origin = &origin
			resp.Rotation = res.Rotation.String()
		} else {
			unfit++
			resp.Reason = string(res.Reason)
		}
		out = append(out, resp)
	}
	return out, packed, unfit
}

func binResponses(containers []packing.Container) []binResponse {
	out := make([]binResponse, 0, len(containers))
	for _, c := range containers {
		resp := binResponse{
			ID:              c.ID(),
			PlacedCount:     len(c.Placements()),
			RemainingWeight: c.RemainingWeight(),
		}
		if bin, ok := c.(interface {
			PlacedWeight() float64
			UsedVolume() float64
			RemainingVolume() float64
		}); ok {
			resp.PlacedWeight = bin.PlacedWeight()
			resp.UsedVolume = bin.UsedVolume()
			resp.RemainingVolume = bin.RemainingVolume()
		}
		if mc, ok := c.(*maritime.Container); ok {
			gross := mc.GrossWeight()
			resp.GrossWeight = &gross
		}
		out = append(out, resp)
	}
	return out
}
