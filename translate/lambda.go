package translate

import (
	"context"
	"encoding/base64"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
)

// HandleAPIGatewayRequest handles a translation request proxied by API Gateway
// to AWS Lambda. It reports failures through the response status rather than
// the returned error, so Lambda does not treat them as invocation failures.
func (h *Handler) HandleAPIGatewayRequest(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if req.HTTPMethod != "" && req.HTTPMethod != http.MethodPost {
		resp := toAPIGatewayResponse(textResponse(http.StatusMethodNotAllowed, methodNotAllowedMessage))
		resp.Headers["Allow"] = http.MethodPost
		return resp, nil
	}

	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			grip.Info(message.WrapError(err, message.Fields{
				"message":    "could not decode base64 request body",
				"request_id": req.RequestContext.RequestID,
			}))
			return toAPIGatewayResponse(textResponse(http.StatusBadRequest, invalidJSONMessage)), nil
		}
		body = decoded
	}

	return toAPIGatewayResponse(h.Handle(ctx, body)), nil
}

func toAPIGatewayResponse(resp Response) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    map[string]string{"Content-Type": resp.ContentType},
		Body:       resp.Body,
	}
}
