package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/trackferry/trackferry/internal/shared"
)

const defaultYouTubeBaseURL = "https://www.googleapis.com/youtube/v3"

// searchQualifier biases search relevance toward canonical uploads so
// the top result can be trusted without re-ranking.
const searchQualifier = "official audio"

// YouTubeClient implements [Client] against the YouTube Data API v3.
// The HTTP client is expected to carry credentials already (an oauth2
// transport or API-key transport); this type never touches token files.
type YouTubeClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewYouTubeClient creates a YouTube catalog client. The httpClient
// should be authenticated; it defaults to [http.DefaultClient].
func NewYouTubeClient(httpClient *http.Client, baseURL string) *YouTubeClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = defaultYouTubeBaseURL
	}

	return &YouTubeClient{baseURL: baseURL, httpClient: httpClient}
}

func (y *YouTubeClient) doRequest(ctx context.Context, method, endpoint string, query url.Values, body, result any) error {
	apiURL := y.baseURL + endpoint
	if len(query) > 0 {
		apiURL += "?" + query.Encode()
	}

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error.Message != "" {
			return fmt.Errorf("%w: status %d: %s", shared.ErrAPIRequest, resp.StatusCode, errResp.Error.Message)
		}
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrMalformedResponse, err)
		}
	}

	return nil
}

// Search queries the catalog for music videos matching the title. The
// query is wrapped in quotes and qualified to bias relevance; zero
// matches returns an empty slice.
func (y *YouTubeClient) Search(ctx context.Context, query string, maxResults int) ([]Track, error) {
	if maxResults <= 0 {
		maxResults = 1
	}

	params := url.Values{}
	params.Set("part", "id,snippet")
	params.Set("type", "video")
	params.Set("videoCategoryId", "10")
	params.Set("maxResults", fmt.Sprintf("%d", maxResults))
	params.Set("q", fmt.Sprintf("%q %s", query, searchQualifier))

	var searchResp struct {
		Items []struct {
			ID struct {
				VideoID string `json:"videoId"`
			} `json:"id"`
			Snippet struct {
				Title        string `json:"title"`
				ChannelTitle string `json:"channelTitle"`
			} `json:"snippet"`
		} `json:"items"`
	}

	if err := y.doRequest(ctx, http.MethodGet, "/search", params, nil, &searchResp); err != nil {
		return nil, err
	}

	tracks := make([]Track, 0, len(searchResp.Items))
	for _, item := range searchResp.Items {
		if item.ID.VideoID == "" {
			return nil, fmt.Errorf("%w: search result missing video id", shared.ErrMalformedResponse)
		}
		tracks = append(tracks, Track{
			TrackID: item.ID.VideoID,
			Title:   item.Snippet.Title,
			Artist:  item.Snippet.ChannelTitle,
		})
	}

	return tracks, nil
}

// CreatePlaylist creates a playlist and returns its id.
func (y *YouTubeClient) CreatePlaylist(ctx context.Context, name, description string, privacy Privacy) (string, error) {
	if privacy == "" {
		privacy = PrivacyPrivate
	}

	params := url.Values{}
	params.Set("part", "snippet,status")

	body := map[string]any{
		"snippet": map[string]string{"title": name, "description": description},
		"status":  map[string]string{"privacyStatus": string(privacy)},
	}

	var createResp struct {
		ID string `json:"id"`
	}

	if err := y.doRequest(ctx, http.MethodPost, "/playlists", params, body, &createResp); err != nil {
		return "", err
	}

	if createResp.ID == "" {
		return "", fmt.Errorf("%w: create response missing playlist id", shared.ErrMalformedResponse)
	}

	return createResp.ID, nil
}

// AddItem appends a track to the end of a playlist.
func (y *YouTubeClient) AddItem(ctx context.Context, playlistID, trackID string) error {
	params := url.Values{}
	params.Set("part", "snippet")

	body := map[string]any{
		"snippet": map[string]any{
			"playlistId": playlistID,
			"resourceId": map[string]string{"kind": "youtube#video", "videoId": trackID},
		},
	}

	return y.doRequest(ctx, http.MethodPost, "/playlistItems", params, body, nil)
}

// ListPlaylistItems fetches one page of up to 50 playlist items.
func (y *YouTubeClient) ListPlaylistItems(ctx context.Context, playlistID, pageToken string) (*ItemPage, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("playlistId", playlistID)
	params.Set("maxResults", "50")
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}

	var listResp struct {
		NextPageToken string `json:"nextPageToken"`
		Items         []struct {
			Snippet struct {
				Title      string `json:"title"`
				ResourceID struct {
					VideoID string `json:"videoId"`
				} `json:"resourceId"`
			} `json:"snippet"`
		} `json:"items"`
	}

	if err := y.doRequest(ctx, http.MethodGet, "/playlistItems", params, nil, &listResp); err != nil {
		return nil, err
	}

	page := &ItemPage{NextPageToken: listResp.NextPageToken}
	for _, item := range listResp.Items {
		page.Items = append(page.Items, Track{
			TrackID: item.Snippet.ResourceID.VideoID,
			Title:   item.Snippet.Title,
		})
	}

	return page, nil
}

// ListOwnedPlaylists returns the authenticated account's playlists.
func (y *YouTubeClient) ListOwnedPlaylists(ctx context.Context) ([]PlaylistInfo, error) {
	params := url.Values{}
	params.Set("part", "snippet,contentDetails")
	params.Set("mine", "true")
	params.Set("maxResults", "50")

	var playlists []PlaylistInfo
	pageToken := ""
	for {
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		var listResp struct {
			NextPageToken string `json:"nextPageToken"`
			Items         []struct {
				ID      string `json:"id"`
				Snippet struct {
					Title string `json:"title"`
				} `json:"snippet"`
				ContentDetails struct {
					ItemCount int `json:"itemCount"`
				} `json:"contentDetails"`
			} `json:"items"`
		}

		if err := y.doRequest(ctx, http.MethodGet, "/playlists", params, nil, &listResp); err != nil {
			return nil, err
		}

		for _, item := range listResp.Items {
			playlists = append(playlists, PlaylistInfo{
				ID:        item.ID,
				Title:     item.Snippet.Title,
				ItemCount: item.ContentDetails.ItemCount,
			})
		}

		if listResp.NextPageToken == "" {
			return playlists, nil
		}
		pageToken = listResp.NextPageToken
	}
}
