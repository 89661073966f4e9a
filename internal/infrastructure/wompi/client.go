// Package wompi implementa el puerto payment.Gateway contra el API REST de la
// pasarela Wompi (sandbox o producción).
//
// Flujo completo de un pago con tarjeta nueva:
//
//	GET  /merchants/{publicKey}   → acceptance token (términos y condiciones)
//	POST /tokens/cards            → token opaco de la tarjeta
//	     firma de integridad       (SHA-256, ver signature.go)
//	POST /transactions            → envío del pago
//	GET  /transactions/{id}       → consulta de estado
package wompi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/checkout-api/internal/domain"
	"github.com/jhoicas/checkout-api/internal/domain/payment"
	"github.com/jhoicas/checkout-api/pkg/logger"
)

// Verificar en tiempo de compilación que Client implementa payment.Gateway.
var _ payment.Gateway = (*Client)(nil)

// Config credenciales y endpoint de la pasarela. Se pasa explícitamente al
// construir el cliente; nada se lee del entorno aquí.
type Config struct {
	BaseURL         string
	PublicKey       string
	PrivateKey      string
	IntegritySecret string
	Timeout         time.Duration
}

// TokenCache cache opcional del acceptance token (los tokens de aceptación
// son estables durante su vigencia; evita un GET /merchants por checkout).
type TokenCache interface {
	GetAcceptanceToken(ctx context.Context) (string, bool)
	SetAcceptanceToken(ctx context.Context, token string)
}

// Client implementa payment.Gateway usando net/http.
type Client struct {
	cfg        Config
	httpClient *http.Client
	cache      TokenCache // puede ser nil
	log        *logger.Logger
}

// New construye el cliente. cache puede ser nil (sin cache de acceptance token).
func New(cfg Config, cache TokenCache, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 25 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		cache:      cache,
		log:        log.Component("wompi"),
	}
}

// ── Estructuras del protocolo Wompi ───────────────────────────────────────────

type merchantResponse struct {
	Data struct {
		PresignedAcceptance struct {
			AcceptanceToken string `json:"acceptance_token"`
		} `json:"presigned_acceptance"`
	} `json:"data"`
}

type cardTokenRequest struct {
	Number     string `json:"number"`
	CVC        string `json:"cvc"`
	ExpMonth   string `json:"exp_month"`
	ExpYear    string `json:"exp_year"`
	CardHolder string `json:"card_holder"`
}

type cardTokenResponse struct {
	Status string `json:"status"`
	Data   struct {
		ID       string `json:"id"`
		Brand    string `json:"brand"`
		LastFour string `json:"last_four"`
	} `json:"data"`
}

type transactionRequest struct {
	AcceptanceToken string        `json:"acceptance_token"`
	AmountInCents   int64         `json:"amount_in_cents"`
	Currency        string        `json:"currency"`
	Signature       string        `json:"signature"`
	CustomerEmail   string        `json:"customer_email"`
	Reference       string        `json:"reference"`
	PaymentMethod   paymentMethod `json:"payment_method"`
}

type paymentMethod struct {
	Type         string `json:"type"`
	Token        string `json:"token"`
	Installments int    `json:"installments"`
}

type transactionResponse struct {
	Data struct {
		ID            string `json:"id"`
		Status        string `json:"status"`
		StatusMessage string `json:"status_message"`
		Reference     string `json:"reference"`
	} `json:"data"`
}

// gatewayError cuerpo de error estructurado de la pasarela.
type gatewayError struct {
	Error *struct {
		Type     string              `json:"type"`
		Reason   string              `json:"reason"`
		Messages map[string][]string `json:"messages"`
	} `json:"error"`
}

// reason aplana el payload de error a un mensaje legible.
func (g *gatewayError) reason() string {
	if g.Error == nil {
		return ""
	}
	if g.Error.Reason != "" {
		return g.Error.Reason
	}
	var parts []string
	for field, msgs := range g.Error.Messages {
		parts = append(parts, field+": "+strings.Join(msgs, ", "))
	}
	if len(parts) > 0 {
		return strings.Join(parts, "; ")
	}
	return g.Error.Type
}

// ── Operaciones del puerto ────────────────────────────────────────────────────

// GetAcceptanceToken obtiene el acceptance token del comercio
// (GET /merchants/{publicKey}), usando el cache si está configurado.
func (c *Client) GetAcceptanceToken(ctx context.Context) (string, error) {
	if c.cache != nil {
		if token, ok := c.cache.GetAcceptanceToken(ctx); ok {
			return token, nil
		}
	}

	rawBody, status, err := c.do(ctx, http.MethodGet, "/merchants/"+c.cfg.PublicKey, c.cfg.PublicKey, nil)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("wompi: merchant HTTP %d: %s", status, string(rawBody))
	}

	var mr merchantResponse
	if err := json.Unmarshal(rawBody, &mr); err != nil {
		return "", fmt.Errorf("wompi: deserializar merchant: %w", err)
	}
	token := mr.Data.PresignedAcceptance.AcceptanceToken
	if token == "" {
		return "", fmt.Errorf("wompi: respuesta de merchant sin acceptance_token")
	}

	if c.cache != nil {
		c.cache.SetAcceptanceToken(ctx, token)
	}
	return token, nil
}

// CreateCardToken tokeniza la tarjeta (POST /tokens/cards). Sanitiza la
// entrada (espacios del número, mes a dos dígitos) y solo conserva la marca
// y los últimos cuatro dígitos; el PAN jamás se loguea.
func (c *Client) CreateCardToken(ctx context.Context, card payment.CardData) (*payment.CardToken, error) {
	req := cardTokenRequest{
		Number:     strings.ReplaceAll(strings.TrimSpace(card.Number), " ", ""),
		CVC:        strings.TrimSpace(card.CVC),
		ExpMonth:   padMonth(card.ExpMonth),
		ExpYear:    strings.TrimSpace(card.ExpYear),
		CardHolder: strings.TrimSpace(card.CardHolder),
	}

	rawBody, status, err := c.do(ctx, http.MethodPost, "/tokens/cards", c.cfg.PublicKey, req)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		var ge gatewayError
		if jsonErr := json.Unmarshal(rawBody, &ge); jsonErr == nil && ge.Error != nil {
			return nil, fmt.Errorf("wompi: tokenización rechazada: %s", ge.reason())
		}
		return nil, fmt.Errorf("wompi: tokens/cards HTTP %d: %s", status, string(rawBody))
	}

	var tr cardTokenResponse
	if err := json.Unmarshal(rawBody, &tr); err != nil {
		return nil, fmt.Errorf("wompi: deserializar token de tarjeta: %w", err)
	}
	if tr.Data.ID == "" {
		return nil, fmt.Errorf("wompi: respuesta de tokenización sin id")
	}

	c.log.Debug().Str("brand", tr.Data.Brand).Str("last_four", tr.Data.LastFour).
		Bool("test_card", IsTestCard(req.Number)).
		Msg("tarjeta tokenizada")

	return &payment.CardToken{
		ID:       tr.Data.ID,
		Brand:    tr.Data.Brand,
		LastFour: tr.Data.LastFour,
	}, nil
}

// GenerateIntegritySignature delega en IntegritySignature con la llave configurada.
func (c *Client) GenerateIntegritySignature(reference string, amountInCents int64, currency string) string {
	return IntegritySignature(reference, amountInCents, currency, c.cfg.IntegritySecret)
}

// ProcessPayment envía el pago (POST /transactions).
//
// Valida que acceptance_token y signature estén presentes antes de llamar.
// Si la pasarela devuelve un error estructurado, responde con estado ERROR y
// el mensaje extraído en lugar de retornar error: el caller persiste una
// transacción FAILED en vez de abortar. Una falla de transporte sí retorna error.
func (c *Client) ProcessPayment(ctx context.Context, req payment.Request) (*payment.Response, error) {
	if req.AcceptanceToken == "" {
		return nil, domain.InvalidInput("acceptance_token is required to process a payment")
	}
	if req.Signature == "" {
		return nil, domain.InvalidInput("signature is required to process a payment")
	}

	body := transactionRequest{
		AcceptanceToken: req.AcceptanceToken,
		AmountInCents:   req.AmountInCents,
		Currency:        req.Currency,
		Signature:       req.Signature,
		CustomerEmail:   req.CustomerEmail,
		Reference:       req.Reference,
		PaymentMethod: paymentMethod{
			Type:         "CARD",
			Token:        req.CardToken,
			Installments: req.Installments,
		},
	}

	rawBody, status, err := c.do(ctx, http.MethodPost, "/transactions", c.cfg.PrivateKey, body)
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK && status != http.StatusCreated {
		var ge gatewayError
		if jsonErr := json.Unmarshal(rawBody, &ge); jsonErr == nil && ge.Error != nil {
			c.log.Warn().Str("reference", req.Reference).Str("reason", ge.reason()).
				Msg("pasarela rechazó el pago")
			return &payment.Response{
				Status:        payment.StatusError,
				StatusMessage: ge.reason(),
				Reference:     req.Reference,
			}, nil
		}
		return nil, fmt.Errorf("wompi: transactions HTTP %d: %s", status, string(rawBody))
	}

	var tr transactionResponse
	if err := json.Unmarshal(rawBody, &tr); err != nil {
		return nil, fmt.Errorf("wompi: deserializar transacción: %w", err)
	}

	c.log.Info().Str("reference", req.Reference).Str("provider_id", tr.Data.ID).
		Str("status", tr.Data.Status).Int64("amount_in_cents", req.AmountInCents).
		Msg("pago enviado a la pasarela")

	return &payment.Response{
		ProviderID:    tr.Data.ID,
		Status:        tr.Data.Status,
		StatusMessage: tr.Data.StatusMessage,
		Reference:     tr.Data.Reference,
	}, nil
}

// GetTransactionStatus consulta el estado actual de un pago (GET /transactions/{id}).
func (c *Client) GetTransactionStatus(ctx context.Context, providerID string) (*payment.Response, error) {
	rawBody, status, err := c.do(ctx, http.MethodGet, "/transactions/"+providerID, c.cfg.PrivateKey, nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, domain.NotFound("gateway transaction %s not found", providerID)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("wompi: transactions/%s HTTP %d: %s", providerID, status, string(rawBody))
	}

	var tr transactionResponse
	if err := json.Unmarshal(rawBody, &tr); err != nil {
		return nil, fmt.Errorf("wompi: deserializar estado de transacción: %w", err)
	}
	return &payment.Response{
		ProviderID:    tr.Data.ID,
		Status:        tr.Data.Status,
		StatusMessage: tr.Data.StatusMessage,
		Reference:     tr.Data.Reference,
	}, nil
}

// ProcessPaymentWithNewCard orquesta la secuencia completa del pago con
// tarjeta nueva. La falla de cualquier paso sube sin modificar al caller.
func (c *Client) ProcessPaymentWithNewCard(ctx context.Context, p payment.NewCardPayment) (*payment.Response, *payment.CardToken, error) {
	acceptanceToken, err := c.GetAcceptanceToken(ctx)
	if err != nil {
		return nil, nil, err
	}

	cardToken, err := c.CreateCardToken(ctx, p.Card)
	if err != nil {
		return nil, nil, err
	}

	signature := c.GenerateIntegritySignature(p.Reference, p.AmountInCents, p.Currency)

	resp, err := c.ProcessPayment(ctx, payment.Request{
		AcceptanceToken: acceptanceToken,
		Signature:       signature,
		AmountInCents:   p.AmountInCents,
		Currency:        p.Currency,
		CustomerEmail:   p.CustomerEmail,
		Reference:       p.Reference,
		CardToken:       cardToken.ID,
		Installments:    p.Installments,
	})
	if err != nil {
		return nil, nil, err
	}
	return resp, cardToken, nil
}

// ── Helpers HTTP ──────────────────────────────────────────────────────────────

// do ejecuta la llamada con Bearer auth y devuelve el cuerpo crudo y el status.
func (c *Client) do(ctx context.Context, method, path, bearer string, payload interface{}) ([]byte, int, error) {
	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("wompi: serializar request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("wompi: crear request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, 0, fmt.Errorf("wompi: timeout o cancelación: %w", ctx.Err())
		}
		return nil, 0, fmt.Errorf("wompi: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // max 1 MB
	if err != nil {
		return nil, 0, fmt.Errorf("wompi: leer respuesta: %w", err)
	}
	return rawBody, resp.StatusCode, nil
}

// padMonth normaliza el mes de expiración a dos dígitos ("3" -> "03").
func padMonth(month string) string {
	m := strings.TrimSpace(month)
	if len(m) == 1 {
		return "0" + m
	}
	return m
}
