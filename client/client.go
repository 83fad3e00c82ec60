package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/a-h/jsonapi"
	"github.com/a-h/tutorserver/models"
)

func New(baseURL string) Client {
	return Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

type Client struct {
	baseURL string
}

func (c Client) ChatPost(ctx context.Context, req models.ChatPostRequest) (resp models.ChatPostResponse, err error) {
	url, err := jsonapi.URL(c.baseURL).Path("chat").String()
	if err != nil {
		return resp, err
	}
	return jsonapi.Post[models.ChatPostRequest, models.ChatPostResponse](ctx, url, req)
}

var ErrNotFound = errors.New("tutor server: not found")

func (c Client) RootGet(ctx context.Context) (resp models.RootGetResponse, err error) {
	url, err := jsonapi.URL(c.baseURL).String()
	if err != nil {
		return resp, err
	}
	resp, ok, err := jsonapi.Get[models.RootGetResponse](ctx, url+"/")
	if err != nil {
		return resp, err
	}
	if !ok {
		return resp, fmt.Errorf("%w: %s/", ErrNotFound, url)
	}
	return resp, nil
}

func (c Client) HealthGet(ctx context.Context) (resp models.HealthGetResponse, err error) {
	url, err := jsonapi.URL(c.baseURL).Path("health").String()
	if err != nil {
		return resp, err
	}
	resp, ok, err := jsonapi.Get[models.HealthGetResponse](ctx, url)
	if err != nil {
		return resp, err
	}
	if !ok {
		return resp, fmt.Errorf("%w: %s", ErrNotFound, url)
	}
	return resp, nil
}
