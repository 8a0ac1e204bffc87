package utils

import (
	"fmt"

	"sprintpath/config"

	"github.com/go-resty/resty/v2"
)

// paystackInitResponse is the subset of the transaction/initialize reply we use
type paystackInitResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

// InitializePaystackTransaction creates a hosted-checkout session for a
// sprint purchase. Amount is naira; Paystack wants kobo.
func InitializePaystackTransaction(reference, email string, amountNaira float64) (string, error) {
	client := resty.New()

	var result paystackInitResponse
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.PaystackSecretKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"email":     email,
			"amount":    int64(amountNaira * 100),
			"reference": reference,
			"currency":  "NGN",
		}).
		SetResult(&result).
		Post(config.AppConfig.PaystackBaseURL + "/transaction/initialize")
	if err != nil {
		return "", err
	}
	if resp.IsError() || !result.Status {
		return "", fmt.Errorf("paystack initialize failed: %s", result.Message)
	}
	return result.Data.AuthorizationURL, nil
}
