package anilist

import "encoding/json"

// graphQLRequest is the POST body AniList expects.
type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

type graphQLError struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

type pageData struct {
	Page struct {
		Media []Media `json:"media"`
	} `json:"Page"`
}

type mediaData struct {
	Media *Media `json:"Media"`
}

type recommendationsData struct {
	Media *struct {
		Recommendations struct {
			Nodes []struct {
				MediaRecommendation *Media `json:"mediaRecommendation"`
			} `json:"nodes"`
		} `json:"recommendations"`
	} `json:"Media"`
}

type Media struct {
	ID                int64           `json:"id"`
	Title             MediaTitle      `json:"title"`
	Description       *string         `json:"description"`
	Genres            []string        `json:"genres"`
	AverageScore      *int            `json:"averageScore"`
	Episodes          *int            `json:"episodes"`
	CoverImage        *CoverImage     `json:"coverImage"`
	NextAiringEpisode *AiringSchedule `json:"nextAiringEpisode"`
}

type MediaTitle struct {
	Romaji  *string `json:"romaji"`
	English *string `json:"english"`
}

type CoverImage struct {
	Large string `json:"large"`
}

type AiringSchedule struct {
	Episode         int   `json:"episode"`
	AiringAt        int64 `json:"airingAt"`
	TimeUntilAiring int64 `json:"timeUntilAiring"`
}
