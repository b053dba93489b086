package anilist

const searchQuery = `
query ($search: String, $perPage: Int) {
  Page(perPage: $perPage) {
    media(search: $search, type: ANIME) {
      id
      title { romaji english }
      description
      genres
      averageScore
      coverImage { large }
    }
  }
}`

const detailsQuery = `
query ($id: Int) {
  Media(id: $id, type: ANIME) {
    id
    title { romaji english }
    description
    genres
    averageScore
    episodes
    coverImage { large }
    nextAiringEpisode { episode airingAt timeUntilAiring }
  }
}`

const recommendationsQuery = `
query ($id: Int, $perPage: Int) {
  Media(id: $id, type: ANIME) {
    recommendations(perPage: $perPage, sort: RATING_DESC) {
      nodes {
        mediaRecommendation {
          id
          title { romaji english }
          genres
          averageScore
          coverImage { large }
        }
      }
    }
  }
}`

const airingQuery = `
query ($perPage: Int) {
  Page(page: 1, perPage: $perPage) {
    media(sort: POPULARITY_DESC, type: ANIME, status: RELEASING) {
      id
      title { romaji english }
      episodes
      coverImage { large }
      nextAiringEpisode { episode airingAt timeUntilAiring }
    }
  }
}`
