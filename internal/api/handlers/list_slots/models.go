package list_slots

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/luklinx/carsabeg-sub000/internal/service/slots/models"
)

// parseQuery собирает запрос сервиса из query параметров:
// carId, includeGeneric (по умолчанию true при заданном carId), from, to (RFC 3339), onlyAvailable
func parseQuery(q url.Values) (*models.ListSlotsRequest, error) {
	req := &models.ListSlotsRequest{}

	if v := q.Get("carId"); v != "" {
		carID, err := strconv.ParseInt(v, 10, 64)
		if err != nil || carID <= 0 {
			return nil, fmt.Errorf("invalid carId %q", v)
		}
		req.CarID = &carID
		req.IncludeGeneric = true
	}

	if v := q.Get("includeGeneric"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid includeGeneric %q", v)
		}
		req.IncludeGeneric = b
	}

	if v := q.Get("onlyAvailable"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid onlyAvailable %q", v)
		}
		req.OnlyAvailable = b
	}

	var err error
	if req.From, err = parseInstant(q, "from"); err != nil {
		return nil, err
	}
	if req.To, err = parseInstant(q, "to"); err != nil {
		return nil, err
	}

	return req, nil
}

func parseInstant(q url.Values, name string) (*time.Time, error) {
	v := q.Get(name)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", name, v)
	}
	return &t, nil
}
