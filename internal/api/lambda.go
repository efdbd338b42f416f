package api

import (
	"context"
	"net/http"

	"contact-mailer/internal/contact"

	"github.com/aws/aws-lambda-go/events"
)

// LambdaHandler is the API Gateway proxy integration signature.
type LambdaHandler func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// NewLambdaHandler exposes h behind an API Gateway proxy integration. It never
// returns an error: failures are already encoded in the response.
func NewLambdaHandler(h *contact.Handler) LambdaHandler {
	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		headers := make(http.Header, len(req.Headers))
		for k, v := range req.Headers {
			headers.Set(k, v)
		}

		resp := h.Handle(ctx, contact.Request{
			Method:          req.HTTPMethod,
			Headers:         headers,
			Body:            req.Body,
			IsBase64Encoded: req.IsBase64Encoded,
		})

		return events.APIGatewayProxyResponse{
			StatusCode: resp.StatusCode,
			Headers:    resp.Headers,
			Body:       resp.Body(),
		}, nil
	}
}
