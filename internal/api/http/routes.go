package httpapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jalrakshak/groundwater-data-aggregation/internal/groundwater"
	"github.com/jalrakshak/groundwater-data-aggregation/internal/recommend"
	"github.com/jalrakshak/groundwater-data-aggregation/internal/store"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *groundwater.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/groundwater", func(c *fiber.Ctx) error {
		coord, err := parseCoordQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		res := service.Fetch(c.Context(), coord.Lat, coord.Lon)
		if !res.Success {
			// Only an unexpected synthesis failure lands here.
			return c.Status(fiber.StatusInternalServerError).JSON(res)
		}
		return c.JSON(res)
	})

	v1.Get("/groundwater/latest", func(c *fiber.Ctx) error {
		coord, err := parseCoordQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		rec, err := service.GetLatest(coord)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no groundwater data for requested location")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch groundwater data")
		}
		return c.JSON(rec)
	})

	v1.Get("/groundwater/history", func(c *fiber.Ctx) error {
		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		records, err := service.GetRange(req.Coord, req.From, req.To)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no groundwater history for requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch groundwater history")
		}

		return c.JSON(fiber.Map{
			"location": req.Coord,
			"from":     req.From,
			"to":       req.To,
			"records":  records,
		})
	})

	v1.Get("/soil/reference", func(c *fiber.Ctx) error {
		return c.JSON(groundwater.Reference())
	})

	v1.Post("/structures/recommend", func(c *fiber.Ctx) error {
		var req recommend.Request
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c.JSON(recommend.BuildPlan(req))
	})
}

// coordQuery holds the validated lat/lon query parameters.
type coordQuery struct {
	Lat float64 `validate:"gte=-90,lte=90"`
	Lon float64 `validate:"gte=-180,lte=180"`
}

func parseCoordQuery(c *fiber.Ctx) (groundwater.Coordinate, error) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" || lonStr == "" {
		return groundwater.Coordinate{}, errors.New("lat and lon query parameters are required")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return groundwater.Coordinate{}, errors.New("invalid lat; must be a decimal degree value")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return groundwater.Coordinate{}, errors.New("invalid lon; must be a decimal degree value")
	}

	if err := validate.Struct(coordQuery{Lat: lat, Lon: lon}); err != nil {
		return groundwater.Coordinate{}, err
	}

	return groundwater.Coordinate{Lat: lat, Lon: lon}, nil
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	Coord groundwater.Coordinate
	From  time.Time `validate:"required"`
	To    time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	coord, err := parseCoordQuery(c)
	if err != nil {
		return err
	}
	h.Coord = coord

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
