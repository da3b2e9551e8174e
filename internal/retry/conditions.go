package retry

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/xerrors"
)

type Conditions struct {
	serverError    bool
	gatewayError   bool
	connectFailure bool
	retriable4xx   bool
	statusCodes    []int
}

func NewDefaultConditions() *Conditions {
	return &Conditions{
		serverError:    false,
		gatewayError:   true,
		connectFailure: true,
		retriable4xx:   true,
		statusCodes:    []int{},
	}
}

// NewConditionsFromString parses a comma-separated condition list such as
// "gateway-error,connect-failure,429". Bare integers are treated as
// status codes.
func NewConditionsFromString(s string) (*Conditions, error) {
	c := &Conditions{}
	for _, s := range strings.Split(s, ",") {
		switch s {
		case "5xx":
			c.serverError = true
		case "gateway-error":
			c.gatewayError = true
		case "connect-failure":
			c.connectFailure = true
		case "retriable-4xx":
			c.retriable4xx = true
		default:
			statusCode, err := strconv.Atoi(s)
			if err != nil {
				return nil, xerrors.Errorf("invalid retry condition: %s", s)
			}
			c.statusCodes = append(c.statusCodes, statusCode)
		}
	}
	return c, nil
}

// Status classes follow https://github.com/envoyproxy/envoy/blob/70d6ec1df6384118cf2fa2f02c0041edb76b2377/source/common/router/retry_state_impl.cc#L387
func (c *Conditions) CheckResponse(response *http.Response) bool {
	if (c.serverError && response.StatusCode >= 500 && response.StatusCode < 600) ||
		(c.gatewayError && response.StatusCode >= 502 && response.StatusCode < 505) ||
		(c.retriable4xx && response.StatusCode == 409) {
		return true
	}

	for _, i := range c.statusCodes {
		if i == response.StatusCode {
			return true
		}
	}

	return false
}

func (c *Conditions) CheckError(err error) bool {
	type temporary interface{ Temporary() bool }
	var terr temporary
	if (errors.As(err, &terr) && terr.Temporary()) || errors.Is(err, io.EOF) {
		// ref https://www.envoyproxy.io/docs/envoy/latest/configuration/http/http_filters/router_filter#:~:text=Envoy%20will%20attempt%20a%20retry%20if%20the%20upstream%20server%20responds%20with%20any%205xx%20response%20code%2C%20or%20does%20not%20respond%20at%20all%20(disconnect/reset/read%20timeout).%20(Includes%20connect%2Dfailure%20and%20refused%2Dstream)
		if c.connectFailure || c.serverError {
			return true
		}
	}
	return false
}
