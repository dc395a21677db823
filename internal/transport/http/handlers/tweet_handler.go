package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/nicorlas/twitter-api/internal/domain"
	"github.com/nicorlas/twitter-api/internal/service"
	"github.com/nicorlas/twitter-api/internal/transport/http/middleware"
	"github.com/nicorlas/twitter-api/pkg/validator"
)

type TweetHandler struct {
	tweetService *service.TweetService
}

func NewTweetHandler(tweetService *service.TweetService) *TweetHandler {
	return &TweetHandler{tweetService: tweetService}
}

func (h *TweetHandler) Post(w http.ResponseWriter, r *http.Request) {
	var input service.PostTweetInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidatePostTweet(input.Content, input.By); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	actor := middleware.GetUserName(r.Context())
	tweet, err := h.tweetService.Post(r.Context(), actor, input)
	if err != nil {
		if errors.Is(err, service.ErrTweetExists) {
			writeError(w, http.StatusConflict, "TWEET_EXISTS", "A tweet with this id already exists")
		} else {
			writeServiceError(w, "post tweet", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, tweet)
}

func (h *TweetHandler) List(w http.ResponseWriter, r *http.Request) {
	tweets, err := h.tweetService.List(r.Context())
	if err != nil {
		writeServiceError(w, "list tweets", err)
		return
	}

	if tweets == nil {
		tweets = []domain.Tweet{}
	}

	writeJSON(w, http.StatusOK, tweets)
}

func (h *TweetHandler) Get(w http.ResponseWriter, r *http.Request) {
	tweetID, err := uuid.Parse(r.PathValue("tweet_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid tweet ID")
		return
	}

	tweet, err := h.tweetService.Get(r.Context(), tweetID)
	if err != nil {
		writeServiceError(w, "get tweet", err)
		return
	}

	writeJSON(w, http.StatusOK, tweet)
}

func (h *TweetHandler) Edit(w http.ResponseWriter, r *http.Request) {
	tweetID, err := uuid.Parse(r.PathValue("tweet_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid tweet ID")
		return
	}

	var input service.EditTweetInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateEditTweet(input.Content); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	actor := middleware.GetUserName(r.Context())
	tweet, err := h.tweetService.Edit(r.Context(), actor, tweetID, input)
	if err != nil {
		writeServiceError(w, "edit tweet", err)
		return
	}

	writeJSON(w, http.StatusOK, tweet)
}

func (h *TweetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tweetID, err := uuid.Parse(r.PathValue("tweet_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid tweet ID")
		return
	}

	actor := middleware.GetUserName(r.Context())
	tweet, err := h.tweetService.Delete(r.Context(), actor, tweetID)
	if err != nil {
		writeServiceError(w, "delete tweet", err)
		return
	}

	writeJSON(w, http.StatusOK, tweet)
}
