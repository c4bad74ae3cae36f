package youtube

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// clientProfile is one client identity presented to the upstream. Platforms
// block by declared client, so the same logical request is retried under an
// ordered list of identities until one is served.
type clientProfile struct {
	name      string
	userAgent string
	client    innertubeClient
}

type innertubeClient struct {
	ClientName        string `json:"clientName"`
	ClientVersion     string `json:"clientVersion"`
	AndroidSDKVersion int    `json:"androidSdkVersion,omitempty"`
	DeviceModel       string `json:"deviceModel,omitempty"`
	HL                string `json:"hl"`
	GL                string `json:"gl"`
}

type playerRequest struct {
	Context struct {
		Client innertubeClient `json:"client"`
	} `json:"context"`
	VideoID        string `json:"videoId"`
	ContentCheckOK bool   `json:"contentCheckOk"`
	RacyCheckOK    bool   `json:"racyCheckOk"`
}

var (
	androidProfile = clientProfile{
		name:      "android",
		userAgent: "com.google.android.youtube/19.09.37 (Linux; U; Android 11) gzip",
		client: innertubeClient{
			ClientName:        "ANDROID",
			ClientVersion:     "19.09.37",
			AndroidSDKVersion: 30,
			HL:                "en",
			GL:                "US",
		},
	}
	iosProfile = clientProfile{
		name:      "ios",
		userAgent: "com.google.ios.youtube/19.09.3 (iPhone14,3; U; CPU iOS 15_6 like Mac OS X)",
		client: innertubeClient{
			ClientName:    "IOS",
			ClientVersion: "19.09.3",
			DeviceModel:   "iPhone14,3",
			HL:            "en",
			GL:            "US",
		},
	}
	webProfile = clientProfile{
		name:      "web",
		userAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		client: innertubeClient{
			ClientName:    "WEB",
			ClientVersion: "2.20240726.00.00",
			HL:            "en",
			GL:            "US",
		},
	}
)

// extractionProfiles is the fallback order for media info extraction. Mobile
// identities are served most reliably, so they go first.
var extractionProfiles = []clientProfile{androidProfile, iosProfile, webProfile}

type playerResponse struct {
	PlayabilityStatus struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	VideoDetails struct {
		VideoID          string `json:"videoId"`
		Title            string `json:"title"`
		Author           string `json:"author"`
		LengthSeconds    string `json:"lengthSeconds"`
		ViewCount        string `json:"viewCount"`
		ShortDescription string `json:"shortDescription"`
	} `json:"videoDetails"`
	Microformat struct {
		PlayerMicroformatRenderer struct {
			UploadDate  string `json:"uploadDate"`
			PublishDate string `json:"publishDate"`
		} `json:"playerMicroformatRenderer"`
	} `json:"microformat"`
	Captions struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrackData `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

type captionTrackData struct {
	BaseURL string `json:"baseUrl"`
	Name    struct {
		SimpleText string `json:"simpleText"`
	} `json:"name"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" marks auto-generated tracks
}

// callPlayer issues one innertube player request under the given identity.
func (c *Client) callPlayer(ctx context.Context, id VideoID, profile clientProfile) (*playerResponse, error) {
	req := playerRequest{
		VideoID:        string(id),
		ContentCheckOK: true,
		RacyCheckOK:    true,
	}
	req.Context.Client = profile.client

	body, err := c.postJSON(ctx, c.config.PlayerEndpoint, req, profile.userAgent)
	if err != nil {
		return nil, err
	}

	var resp playerResponse
	if err := unmarshalPlayerResponse(body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func unmarshalPlayerResponse(body []byte, resp *playerResponse) error {
	if len(strings.TrimSpace(string(body))) == 0 {
		return ErrEmptyPayload
	}
	if err := json.Unmarshal(body, resp); err != nil {
		return errors.Wrap(err, "failed to parse player response")
	}
	return nil
}

// checkPlayability turns an upstream refusal into a classified error.
// Private or removed videos cannot be recovered by trying another client
// identity, so those surface as permanent.
func checkPlayability(resp *playerResponse) error {
	status := resp.PlayabilityStatus.Status
	if status == "" || status == "OK" {
		return nil
	}

	reason := resp.PlayabilityStatus.Reason
	if reason == "" {
		reason = status
	}

	kind := classifyMessage(reason)
	if status == "ERROR" && kind != KindPermanent {
		// An outright ERROR with an unrecognized reason still means the
		// video itself is gone, not that we were blocked.
		kind = KindPermanent
	}

	return &UpstreamError{
		Op:   "youtube.checkPlayability",
		Kind: kind,
		Err:  errors.Errorf("upstream refused playback: %s", reason),
	}
}
