package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/cucumber/godog"
)

// registerAPISteps registers HTTP request steps.
func registerAPISteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the API server is running$`, theAPIServerIsRunning)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
	ctx.Step(`^I set header "([^"]*)" to "([^"]*)"$`, iSetHeaderTo)
	ctx.Step(`^I am registered as "([^"]*)" with password "([^"]*)"$`, iAmRegisteredAsWithPassword)
	ctx.Step(`^I log in as "([^"]*)" with password "([^"]*)"$`, iLogInAsWithPassword)
	ctx.Step(`^I log out$`, iLogOut)
}

func theAPIServerIsRunning(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.server == nil {
		return fmt.Errorf("test server is not running")
	}
	return nil
}

func iSendARequestTo(ctx context.Context, method, endpoint string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	return ctx, tc.send(method, endpoint, nil)
}

func iSendARequestToWithBody(ctx context.Context, method, endpoint string, body *godog.DocString) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	return ctx, tc.send(method, endpoint, []byte(body.Content))
}

func iSetHeaderTo(ctx context.Context, header, value string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	tc.requestHeaders[header] = value
	return ctx, nil
}

// iAmRegisteredAsWithPassword registers a user and keeps its access token for later requests.
func iAmRegisteredAsWithPassword(ctx context.Context, username, password string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	body, _ := json.Marshal(map[string]string{
		"username":  username,
		"email":     username + "@example.com",
		"full_name": username,
		"password":  password,
	})
	if err := tc.send(http.MethodPost, "/api/v1/auth/register", body); err != nil {
		return ctx, err
	}
	if tc.response.StatusCode != http.StatusCreated {
		return ctx, fmt.Errorf("registration failed with status %d: %s", tc.response.StatusCode, tc.responseBody)
	}
	return ctx, tc.keepSession()
}

func iLogInAsWithPassword(ctx context.Context, login, password string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	body, _ := json.Marshal(map[string]string{"login": login, "password": password})
	if err := tc.send(http.MethodPost, "/api/v1/auth/login", body); err != nil {
		return ctx, err
	}
	if tc.response.StatusCode != http.StatusOK {
		return ctx, nil
	}
	return ctx, tc.keepSession()
}

func iLogOut(ctx context.Context) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	tc.accessToken = ""
	return ctx, nil
}

func (tc *TestContext) keepSession() error {
	var auth struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	if err := json.Unmarshal(tc.responseBody, &auth); err != nil {
		return fmt.Errorf("failed to parse auth response: %w", err)
	}
	tc.accessToken = auth.AccessToken
	tc.currentUserID = auth.User.ID
	return nil
}

func (tc *TestContext) send(method, endpoint string, body []byte) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, tc.server.URL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for key, value := range tc.requestHeaders {
		req.Header.Set(key, value)
	}

	if tc.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	return nil
}
