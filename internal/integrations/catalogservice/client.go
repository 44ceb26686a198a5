package catalogservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с CatalogService
// CatalogService владеет справочниками магазинов, услуг и мастеров;
// этот сервис читает их только на время запроса и ничего не мутирует.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента CatalogService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetShop получает магазин с его расписанием работы
func (c *Client) GetShop(ctx context.Context, shopID int64) (*Shop, error) {
	url := fmt.Sprintf("%s/internal/shops/%d", c.baseURL, shopID)

	var shop Shop
	if err := c.getJSON(ctx, url, &shop, ErrShopNotFound); err != nil {
		return nil, err
	}
	return &shop, nil
}

// GetService получает услугу компании (длительность, буферы, гранулярность,
// список квалифицированных мастеров, требуемые навыки)
func (c *Client) GetService(ctx context.Context, shopID, serviceID int64) (*Service, error) {
	url := fmt.Sprintf("%s/internal/shops/%d/services/%d", c.baseURL, shopID, serviceID)

	var service Service
	if err := c.getJSON(ctx, url, &service, ErrServiceNotFound); err != nil {
		return nil, err
	}
	return &service, nil
}

// GetSpecialists получает всех мастеров магазина (включая неактивных —
// фильтрация по active на стороне вызывающего)
func (c *Client) GetSpecialists(ctx context.Context, shopID int64) ([]*Specialist, error) {
	url := fmt.Sprintf("%s/internal/shops/%d/specialists", c.baseURL, shopID)

	var specialists []*Specialist
	if err := c.getJSON(ctx, url, &specialists, ErrShopNotFound); err != nil {
		return nil, err
	}
	return specialists, nil
}

// GetSpecialist получает одного мастера магазина
func (c *Client) GetSpecialist(ctx context.Context, shopID, specialistID int64) (*Specialist, error) {
	url := fmt.Sprintf("%s/internal/shops/%d/specialists/%d", c.baseURL, shopID, specialistID)

	var specialist Specialist
	if err := c.getJSON(ctx, url, &specialist, ErrSpecialistNotFound); err != nil {
		return nil, err
	}
	return &specialist, nil
}

// GetSpecialistsWithGracefulDegradation получает мастеров магазина с graceful degradation
// При недоступности CatalogService возвращает ErrServiceDegraded, чтобы отчётные
// вызовы могли отличить сбой каталога от пустого магазина
func (c *Client) GetSpecialistsWithGracefulDegradation(ctx context.Context, shopID int64) ([]*Specialist, error) {
	specialists, err := c.GetSpecialists(ctx, shopID)
	if err != nil {
		if errors.Is(err, ErrShopNotFound) {
			return nil, err
		}

		c.log.Error("CatalogService unavailable, applying graceful degradation for shop_id=%d: %v", shopID, err)
		return nil, fmt.Errorf("%w: shop_id=%d, error=%v", ErrServiceDegraded, shopID, err)
	}

	return specialists, nil
}

// getJSON выполняет GET запрос и декодирует JSON ответ
func (c *Client) getJSON(ctx context.Context, url string, dest interface{}, notFoundErr error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return fmt.Errorf("%w: invalid request parameters", ErrInvalidResponse)
	case http.StatusNotFound:
		return notFoundErr
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
