package http

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
)

func (i *IntegrationTestSuite) TestConversion_EndToEnd() {
	res, err := i.client.SendConversion(i.ctx,
		`{"event_name":"Lead","event_source_url":"https://x","user_data":{"em":"A@B.com"}}`,
		map[string]string{"User-Agent": "integration-test"})
	i.Require().NoError(err)
	i.Require().Equal(http.StatusOK, res.Status, string(res.Body))
	i.Equal(allowedOrigin, res.Header.Get("Access-Control-Allow-Origin"))

	var body struct {
		Message    string `json:"message"`
		FBResponse struct {
			EventsReceived int `json:"events_received"`
		} `json:"fb_response"`
	}
	i.Require().NoError(json.Unmarshal(res.Body, &body))
	i.Equal(1, body.FBResponse.EventsReceived)

	calls := i.upstream.received()
	i.Require().Len(calls, 1)
	i.Equal("/v19.0/"+pixelID+"/events", calls[0].Path)
	i.Equal(accessToken, calls[0].Token)

	sum := sha256.Sum256([]byte("a@b.com"))
	i.Require().Len(calls[0].Payload.Data, 1)
	ev := calls[0].Payload.Data[0]
	i.Equal(hex.EncodeToString(sum[:]), *ev.UserData.Email)
	i.Equal("integration-test", *ev.UserData.ClientUserAgent)
	i.NotNil(ev.UserData.ClientIPAddress)
	i.NotZero(ev.EventTime)
}

func (i *IntegrationTestSuite) TestConversion_Invalid() {
	res, err := i.client.SendConversion(i.ctx, `{"event_name":"Lead"}`, nil)
	i.Require().NoError(err)

	i.Equal(http.StatusBadRequest, res.Status)
	i.Empty(i.upstream.received())
}

func (i *IntegrationTestSuite) TestConversion_Rejected() {
	i.upstream.reset(http.StatusBadRequest, `{"error":"bad token"}`)

	res, err := i.client.SendConversion(i.ctx,
		`{"event_name":"Lead","event_source_url":"https://x","user_data":{}}`, nil)
	i.Require().NoError(err)

	i.Equal(http.StatusBadGateway, res.Status)
	var body struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	i.Require().NoError(json.Unmarshal(res.Body, &body))
	i.NotEmpty(body.Message)
	i.JSONEq(`{"error":"bad token"}`, string(body.Error))
	i.NotContains(string(res.Body), accessToken)
}

func (i *IntegrationTestSuite) TestPreflight() {
	res, err := i.client.Preflight(i.ctx, "/api/conversion")
	i.Require().NoError(err)

	i.Equal(http.StatusNoContent, res.Status)
	i.Empty(res.Body)
	i.Equal(allowedOrigin, res.Header.Get("Access-Control-Allow-Origin"))
	i.Equal("POST, OPTIONS", res.Header.Get("Access-Control-Allow-Methods"))
	i.Equal("Content-Type", res.Header.Get("Access-Control-Allow-Headers"))
	i.Empty(i.upstream.received())
}

func (i *IntegrationTestSuite) TestLiveness() {
	res, err := i.client.Liveness(i.ctx)
	i.Require().NoError(err)

	i.Equal(http.StatusOK, res.Status)
	i.NotEmpty(res.Body)
}
