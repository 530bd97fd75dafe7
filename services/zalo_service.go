package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	config "github.com/yenthanh/chemistry_tutor/configs"
	"github.com/yenthanh/chemistry_tutor/models"
)

const (
	defaultZaloOAuthBaseURL = "https://oauth.zaloapp.com/v4"
	defaultZaloGraphBaseURL = "https://graph.zaloapp.com/v2.0"
)

// ZaloService performs the server side of the OAuth handshake: the
// authorization-code exchange and the profile fetch. The app secret
// never leaves this process.
type ZaloService struct {
	Client       *http.Client
	OAuthBaseURL string
	GraphBaseURL string
	AppID        string
	AppSecret    string
	AppURL       string
}

var zaloService *ZaloService

func InitZaloService() {
	zaloService = &ZaloService{
		Client:       &http.Client{Timeout: 10 * time.Second},
		OAuthBaseURL: defaultZaloOAuthBaseURL,
		GraphBaseURL: defaultZaloGraphBaseURL,
		AppID:        config.Config("ZALO_APP_ID"),
		AppSecret:    config.Config("ZALO_APP_SECRET"),
		AppURL:       config.ConfigOr("APP_URL", "http://localhost:3000"),
	}
}

func GetZaloService() *ZaloService {
	return zaloService
}

// Configured reports whether the provider app id is present. Without
// it the auth endpoints degrade to configuration errors.
func (z *ZaloService) Configured() bool {
	return z.AppID != ""
}

// RedirectURI is fixed to this deployment's callback route.
func (z *ZaloService) RedirectURI() string {
	return z.AppURL + "/auth/callback"
}

// AuthorizationURL builds the provider login URL handed to the browser
// popup. The state token is opaque to the provider.
func (z *ZaloService) AuthorizationURL(state string) string {
	return fmt.Sprintf("%s/permission?app_id=%s&redirect_uri=%s&state=%s",
		z.OAuthBaseURL, z.AppID, url.QueryEscape(z.RedirectURI()), state)
}

type zaloTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}

// ExchangeCode trades an authorization code for an access token via a
// server-to-server POST. The app secret travels in the secret_key
// header, per the provider's v4 contract.
func (z *ZaloService) ExchangeCode(code string) (string, error) {
	form := url.Values{}
	form.Set("code", code)
	form.Set("app_id", z.AppID)
	form.Set("grant_type", "authorization_code")
	form.Set("code_verifier", "")

	req, err := http.NewRequest("POST", z.OAuthBaseURL+"/access_token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("secret_key", z.AppSecret)

	resp, err := z.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("token endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	var tokenResp zaloTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", err
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned no access token")
	}
	return tokenResp.AccessToken, nil
}

// FetchProfile loads the user profile for an access token. It returns
// both the parsed profile and the raw provider JSON; the raw bytes are
// what the session cookie stores, so nothing the provider sent is lost.
func (z *ZaloService) FetchProfile(accessToken string) (*models.UserProfile, []byte, error) {
	req, err := http.NewRequest("GET", z.GraphBaseURL+"/me?fields=id,name,picture", nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("access_token", accessToken)

	resp, err := z.Client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("profile endpoint returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}

	var profile models.UserProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, nil, fmt.Errorf("failed to parse profile response: %w", err)
	}
	return &profile, raw, nil
}
