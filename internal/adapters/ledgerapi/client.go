// Package ledgerapi is an HTTP client for a remote ledger's admin surface.
package ledgerapi

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"room_ledger/internal/adapters/observability"
	"room_ledger/internal/domain"
)

const maxAttempts = 4

type Client struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter
}

func New(base string, rps int) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

var (
	ErrNotFound   = errors.New("ledgerapi: not found")
	ErrBadRequest = errors.New("ledgerapi: rejected")
	errConflict   = errors.New("ledgerapi: conflict")
)

type roomBody struct {
	Number string `json:"number"`
	Price  string `json:"price"`
	Type   string `json:"type"`
}

type customerBody struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// AddRoom creates one room. A 409 comes back as domain.ErrDuplicateRoom.
func (c *Client) AddRoom(ctx context.Context, r domain.Room) error {
	body := []roomBody{{Number: r.Number, Price: r.Price.String(), Type: r.Type.String()}}
	err := c.do(ctx, http.MethodPost, "/v1/rooms", body, nil)
	if errors.Is(err, errConflict) {
		return fmt.Errorf("room %q: %w", r.Number, domain.ErrDuplicateRoom)
	}
	return err
}

// CreateCustomer registers a customer. A 409 comes back as domain.ErrDuplicateCustomer.
func (c *Client) CreateCustomer(ctx context.Context, email, firstName, lastName string) (domain.Customer, error) {
	var out customerBody
	err := c.do(ctx, http.MethodPost, "/v1/customers", customerBody{Email: email, FirstName: firstName, LastName: lastName}, &out)
	if errors.Is(err, errConflict) {
		return domain.Customer{}, fmt.Errorf("customer %q: %w", email, domain.ErrDuplicateCustomer)
	}
	if err != nil {
		return domain.Customer{}, err
	}
	return domain.Customer{Email: out.Email, FirstName: out.FirstName, LastName: out.LastName}, nil
}

// ListRooms returns the remote catalog.
func (c *Client) ListRooms(ctx context.Context) ([]domain.Room, error) {
	var out []domain.Room
	return out, c.do(ctx, http.MethodGet, "/v1/rooms", nil, &out)
}

// ---- Internals ----

// do sends one JSON request with retries. Every attempt, retries included, waits on the
// client-side limiter. Retries on 429 and transient 5xx, honoring Retry-After when provided.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var payload []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		payload = b
	}

	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if err := c.rl.Wait(ctx); err != nil {
			return err
		}

		// fresh request and body reader each attempt
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "room-ledger-importer/1.0")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveExternal("ledger", path, 0, time.Since(start))
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < maxAttempts-1 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		observability.ObserveExternal("ledger", path, resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK, http.StatusCreated:
			defer resp.Body.Close()
			if out == nil {
				_, _ = io.Copy(io.Discard, resp.Body)
				return nil
			}
			return json.NewDecoder(resp.Body).Decode(out)

		case http.StatusNoContent:
			resp.Body.Close()
			return nil

		case http.StatusNotFound:
			resp.Body.Close()
			return ErrNotFound

		case http.StatusConflict:
			resp.Body.Close()
			return errConflict

		case http.StatusBadRequest:
			detail := problemDetail(resp.Body)
			resp.Body.Close()
			return fmt.Errorf("%w: %s", ErrBadRequest, detail)

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < maxAttempts-1 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return lastErr
}

func problemDetail(r io.Reader) string {
	var p struct {
		Detail string `json:"detail"`
	}
	b, _ := io.ReadAll(io.LimitReader(r, 4096))
	if err := json.Unmarshal(b, &p); err == nil && p.Detail != "" {
		return p.Detail
	}
	return strings.TrimSpace(string(b))
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). Returns 0 if absent or invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles from 100ms per attempt with up to +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 100 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
