package student

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strconv"

	pkgerrors "github.com/pkg/errors"

	"github.com/chaimtop/studygo/core"
	"github.com/chaimtop/studygo/core/paging"
)

var (
	// errors
	ErrMissingCode = errors.New("login code is required")
	ErrNotLoggedIn = errors.New("not logged in")
)

type (
	// Caller dispatches one classified backend call. The request pipeline
	// (services/api) satisfies it.
	Caller interface {
		Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error)
		Post(ctx context.Context, path string, body interface{}) (json.RawMessage, error)
	}

	// SessionStore is the slice of the session store this service mutates.
	SessionStore interface {
		Token() string
		Authenticated() bool
		CurrentUser() *Profile
		Save(token string, user *Profile) error
		Clear()
	}

	Service struct {
		api     Caller
		session SessionStore
	}
)

func NewService(api Caller, session SessionStore) *Service {
	return &Service{api: api, session: session}
}

// Login exchanges a platform login code for a session. When the account has
// no phone bound yet the result carries NeedBind plus the hand-off values for
// BindPhone and nothing is saved.
func (svc *Service) Login(ctx context.Context, code string) (LoginResult, error) {
	code = core.CleanString(code)
	if code == "" {
		return LoginResult{}, core.NewValidationError(ErrMissingCode,
			core.FieldError{Field: "code", Error: ErrMissingCode.Error()})
	}

	data, err := svc.api.Post(ctx, "/wx/login", map[string]string{"code": code})
	if err != nil {
		return LoginResult{}, err
	}
	var res LoginResult
	if err := json.Unmarshal(data, &res); err != nil {
		return LoginResult{}, pkgerrors.Wrap(err, "decoding login result")
	}
	if !res.NeedBind {
		if err := svc.session.Save(res.Token, res.User); err != nil {
			return LoginResult{}, pkgerrors.Wrap(err, "saving session")
		}
	}
	return res, nil
}

// BindPhoneInput completes a NeedBind login. Either the platform-encrypted
// phone payload or a raw phone number (dev mode) must be provided.
type BindPhoneInput struct {
	OpenID        string `json:"openid" validate:"required"`
	SessionKey    string `json:"sessionKey"`
	Phone         string `json:"phone,omitempty" validate:"omitempty,cnmobile"`
	EncryptedData string `json:"encryptedData,omitempty"`
	IV            string `json:"iv,omitempty"`
}

// BindPhone binds a phone number to the account and saves the resulting
// session. Input is validated before any request is issued.
func (svc *Service) BindPhone(ctx context.Context, in BindPhoneInput) (LoginResult, error) {
	in.Phone = core.CleanString(in.Phone)
	if err := core.Validate.Struct(in); err != nil {
		return LoginResult{}, core.TranslateValidationErrors(err)
	}

	data, err := svc.api.Post(ctx, "/wx/bind-phone", in)
	if err != nil {
		return LoginResult{}, err
	}
	var res LoginResult
	if err := json.Unmarshal(data, &res); err != nil {
		return LoginResult{}, pkgerrors.Wrap(err, "decoding bind result")
	}
	if err := svc.session.Save(res.Token, res.User); err != nil {
		return LoginResult{}, pkgerrors.Wrap(err, "saving session")
	}
	return res, nil
}

// Logout clears the local session. The backend keeps no server-side session
// to revoke.
func (svc *Service) Logout() {
	svc.session.Clear()
}

// Me fetches the personalized profile and refreshes the cached copy.
func (svc *Service) Me(ctx context.Context) (Profile, error) {
	data, err := svc.api.Get(ctx, "/students/me", nil)
	if err != nil {
		return Profile{}, err
	}
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return Profile{}, pkgerrors.Wrap(err, "decoding profile")
	}
	if token := svc.session.Token(); token != "" {
		_ = svc.session.Save(token, &p)
	}
	return p, nil
}

// Schedule fetches the lessons for a date; with week set, the whole ISO week
// containing it.
func (svc *Service) Schedule(ctx context.Context, date string, week bool) ([]ScheduleEntry, error) {
	q := url.Values{"date": {date}, "week": {strconv.FormatBool(week)}}
	data, err := svc.api.Get(ctx, "/students/me/schedule", q)
	if err != nil {
		return nil, err
	}
	var res struct {
		Schedules []ScheduleEntry `json:"schedules"`
	}
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, pkgerrors.Wrap(err, "decoding schedule")
	}
	return res.Schedules, nil
}

// Checkin records today's check-in and returns the updated streak.
// Checking in twice surfaces as a *core.BusinessError from the backend.
func (svc *Service) Checkin(ctx context.Context) (CheckinResult, error) {
	data, err := svc.api.Post(ctx, "/students/me/checkin", struct{}{})
	if err != nil {
		return CheckinResult{}, err
	}
	var res CheckinResult
	if err := json.Unmarshal(data, &res); err != nil {
		return CheckinResult{}, pkgerrors.Wrap(err, "decoding checkin result")
	}
	return res, nil
}

// CheckinHistory fetches one month of check-in dates, ready for
// calendar.MonthGrid.
func (svc *Service) CheckinHistory(ctx context.Context, year, month int) (CheckinHistory, error) {
	q := url.Values{"year": {strconv.Itoa(year)}, "month": {strconv.Itoa(month)}}
	data, err := svc.api.Get(ctx, "/students/me/checkin-history", q)
	if err != nil {
		return CheckinHistory{}, err
	}
	var res CheckinHistory
	if err := json.Unmarshal(data, &res); err != nil {
		return CheckinHistory{}, pkgerrors.Wrap(err, "decoding checkin history")
	}
	if res.CheckinDates == nil {
		res.CheckinDates = map[string]bool{}
	}
	return res, nil
}

// HomeworkList fetches all homework for the student.
func (svc *Service) HomeworkList(ctx context.Context) ([]Homework, error) {
	data, err := svc.api.Get(ctx, "/students/me/homework", nil)
	if err != nil {
		return nil, err
	}
	var res struct {
		Items []Homework `json:"items"`
	}
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, pkgerrors.Wrap(err, "decoding homework list")
	}
	return res.Items, nil
}

// SplitHomework partitions items into pending and completed, preserving order.
func SplitHomework(items []Homework) (pending, completed []Homework) {
	for _, hw := range items {
		if hw.Completed() {
			completed = append(completed, hw)
		} else {
			pending = append(pending, hw)
		}
	}
	return pending, completed
}

// HomeworkDetail fetches one homework with its submission state.
func (svc *Service) HomeworkDetail(ctx context.Context, id int) (HomeworkDetail, error) {
	data, err := svc.api.Get(ctx, "/students/me/homework/"+strconv.Itoa(id), nil)
	if err != nil {
		return HomeworkDetail{}, err
	}
	var res HomeworkDetail
	if err := json.Unmarshal(data, &res); err != nil {
		return HomeworkDetail{}, pkgerrors.Wrap(err, "decoding homework detail")
	}
	return res, nil
}

// CompleteHomework marks a homework as done. A repeat submission surfaces as
// a *core.BusinessError with code "ALREADY_SUBMITTED".
func (svc *Service) CompleteHomework(ctx context.Context, id int) error {
	_, err := svc.api.Post(ctx, "/students/me/homework/"+strconv.Itoa(id)+"/complete", struct{}{})
	return err
}

// pageData is the uniform paginated payload shape.
type pageData[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// MessagesPager returns a paginator over the supervision messages feed.
func (svc *Service) MessagesPager(pageSize int) *paging.Paginator[Message] {
	return paging.NewPaginator(pageSize, func(ctx context.Context, page, size int) ([]Message, int, error) {
		q := url.Values{"page": {strconv.Itoa(page)}, "limit": {strconv.Itoa(size)}}
		data, err := svc.api.Get(ctx, "/students/me/messages", q)
		if err != nil {
			return nil, 0, err
		}
		var res pageData[Message]
		if err := json.Unmarshal(data, &res); err != nil {
			return nil, 0, pkgerrors.Wrap(err, "decoding messages page")
		}
		return res.Items, res.Total, nil
	})
}

// RecordingsPager returns a paginator over recorded lessons, optionally
// filtered by subject (0 = all).
func (svc *Service) RecordingsPager(subjectID, pageSize int) *paging.Paginator[Recording] {
	return paging.NewPaginator(pageSize, func(ctx context.Context, page, size int) ([]Recording, int, error) {
		q := url.Values{"page": {strconv.Itoa(page)}, "limit": {strconv.Itoa(size)}}
		if subjectID != 0 {
			q.Set("subject_id", strconv.Itoa(subjectID))
		}
		data, err := svc.api.Get(ctx, "/students/me/recordings", q)
		if err != nil {
			return nil, 0, err
		}
		var res pageData[Recording]
		if err := json.Unmarshal(data, &res); err != nil {
			return nil, 0, pkgerrors.Wrap(err, "decoding recordings page")
		}
		return res.Items, res.Total, nil
	})
}

// RecentMessages fetches the first few messages for the home view.
func (svc *Service) RecentMessages(ctx context.Context, limit int) ([]Message, error) {
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	data, err := svc.api.Get(ctx, "/students/me/messages", q)
	if err != nil {
		return nil, err
	}
	var res pageData[Message]
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, pkgerrors.Wrap(err, "decoding messages")
	}
	return res.Items, nil
}

// SubscribeTemplates lists the push-message templates available for opt-in.
func (svc *Service) SubscribeTemplates(ctx context.Context) ([]SubscribeTemplate, error) {
	data, err := svc.api.Get(ctx, "/wx/subscribe-templates", nil)
	if err != nil {
		return nil, err
	}
	var res struct {
		Templates []SubscribeTemplate `json:"templates"`
	}
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, pkgerrors.Wrap(err, "decoding templates")
	}
	return res.Templates, nil
}

// ChatInput is one turn of the tutoring assistant conversation.
type ChatInput struct {
	Message        string `json:"message" validate:"required"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// Chat sends one message to the tutoring assistant.
func (svc *Service) Chat(ctx context.Context, in ChatInput) (ChatReply, error) {
	in.Message = core.CleanString(in.Message)
	if err := core.Validate.Struct(in); err != nil {
		return ChatReply{}, core.TranslateValidationErrors(err)
	}

	data, err := svc.api.Post(ctx, "/coze/chat", in)
	if err != nil {
		return ChatReply{}, err
	}
	var res ChatReply
	if err := json.Unmarshal(data, &res); err != nil {
		return ChatReply{}, pkgerrors.Wrap(err, "decoding chat reply")
	}
	return res, nil
}
