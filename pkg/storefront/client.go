package storefront

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// APIError is a failed reply: a non-2xx status or success:false.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return e.Message
}

// Client talks to the storefront REST API. Session cookies are kept in a
// cookie jar, so a login carries over to later calls.
type Client struct {
	baseURL string
	http    *http.Client
}

type ClientOption func(*Client)

// WithHTTPClient replaces the transport client. Its Jar is replaced when nil.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		c.http.Jar = jar
	}
	return c, nil
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) (string, error) {
	var (
		rdr         io.Reader
		contentType string
	)
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return "", err
		}
		rdr = bytes.NewReader(raw)
		contentType = "application/json"
	}
	return c.send(ctx, method, path, rdr, contentType, out)
}

// send performs the request and decodes the envelope, then out.
func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) (string, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return "", err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= 300 {
			return "", &APIError{Status: resp.StatusCode}
		}
		return "", fmt.Errorf("decode %s: %w", path, err)
	}
	if resp.StatusCode >= 300 || !env.Success {
		return "", &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return "", fmt.Errorf("decode %s: %w", path, err)
		}
	}
	return env.Message, nil
}

type credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*User, error) {
	var out struct {
		User *User `json:"user"`
	}
	if _, err := c.do(ctx, http.MethodPost, "/api/user/register", credentials{Name: name, Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var out struct {
		User *User `json:"user"`
	}
	if _, err := c.do(ctx, http.MethodPost, "/api/user/login", credentials{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/api/user/logout", nil, nil)
	return err
}

func (c *Client) CheckSession(ctx context.Context) (*User, error) {
	var out struct {
		User *User `json:"user"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/api/user/is-auth", nil, &out); err != nil {
		return nil, err
	}
	if out.User == nil {
		return nil, &APIError{Status: http.StatusOK, Message: "Not Authorized"}
	}
	return out.User, nil
}

func (c *Client) SellerLogin(ctx context.Context, email, password string) error {
	_, err := c.do(ctx, http.MethodPost, "/api/seller/login", credentials{Email: email, Password: password}, nil)
	return err
}

func (c *Client) SellerLogout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/api/seller/logout", nil, nil)
	return err
}

// CheckSeller reports a missing seller session as false without an error.
func (c *Client) CheckSeller(ctx context.Context) (bool, error) {
	_, err := c.do(ctx, http.MethodGet, "/api/seller/is-auth", nil, nil)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var out struct {
		Products []Product `json:"products"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/api/product/list", nil, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

func (c *Client) Wishlist(ctx context.Context) ([]Product, error) {
	var out struct {
		Wishlist []Product `json:"wishlist"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/api/user/wishlist", nil, &out); err != nil {
		return nil, err
	}
	return out.Wishlist, nil
}

type productRef struct {
	ProductID string `json:"productId"`
}

func (c *Client) AddToWishlist(ctx context.Context, productID string) (string, error) {
	return c.do(ctx, http.MethodPost, "/api/user/wishlist/add", productRef{productID}, nil)
}

func (c *Client) RemoveFromWishlist(ctx context.Context, productID string) (string, error) {
	return c.do(ctx, http.MethodPost, "/api/user/wishlist/remove", productRef{productID}, nil)
}

// SyncCart replaces the stored cart with items.
func (c *Client) SyncCart(ctx context.Context, items map[string]int) error {
	_, err := c.do(ctx, http.MethodPost, "/api/cart/update", map[string]interface{}{"cartItems": items}, nil)
	return err
}

// ImageFile is a file picked for upload.
type ImageFile struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

type ProfileUpdate struct {
	Name  string
	Phone string
	Image *ImageFile
}

// UpdateProfile submits the profile form as multipart data.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*User, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("name", update.Name); err != nil {
		return nil, err
	}
	if err := mw.WriteField("phone", update.Phone); err != nil {
		return nil, err
	}
	if img := update.Image; img != nil {
		contentType := img.ContentType
		if contentType == "" {
			contentType = mime.TypeByExtension(strings.ToLower(filepath.Ext(img.Filename)))
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="profileImage"; filename=%q`, filepath.Base(img.Filename)))
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(part, img.Body); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var out struct {
		User *User `json:"user"`
	}
	if _, err := c.send(ctx, http.MethodPost, "/api/user/update-profile", &buf, mw.FormDataContentType(), &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

func (c *Client) Addresses(ctx context.Context) ([]Address, error) {
	var out struct {
		Addresses []Address `json:"addresses"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/api/address/get", nil, &out); err != nil {
		return nil, err
	}
	return out.Addresses, nil
}

func (c *Client) AddAddress(ctx context.Context, addr Address) (string, error) {
	return c.do(ctx, http.MethodPost, "/api/address/add", map[string]Address{"address": addr}, nil)
}

func (c *Client) UpdateAddress(ctx context.Context, addr Address) (string, error) {
	return c.do(ctx, http.MethodPut, "/api/address/update/"+url.PathEscape(addr.ID), map[string]Address{"address": addr}, nil)
}

func (c *Client) DeleteAddress(ctx context.Context, id string) (string, error) {
	return c.do(ctx, http.MethodDelete, "/api/address/delete/"+url.PathEscape(id), nil, nil)
}

var (
	_ Backend        = (*Client)(nil)
	_ ProfileBackend = (*Client)(nil)
)
