package student

import "time"

// Homework statuses as reported by the backend.
const (
	HomeworkPending   = "pending"
	HomeworkCompleted = "completed"
)

// Subjects served by the recordings endpoint. ID 0 means all subjects.
var Subjects = []Subject{
	{ID: 0, Name: "全部"},
	{ID: 1, Name: "言语理解"},
	{ID: 2, Name: "数量关系"},
	{ID: 3, Name: "判断推理"},
	{ID: 4, Name: "资料分析"},
	{ID: 5, Name: "常识判断"},
	{ID: 6, Name: "申论"},
}

type Subject struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CheckinStats summarizes a student's check-in streak.
type CheckinStats struct {
	TotalDays       int  `json:"totalDays"`
	ConsecutiveDays int  `json:"consecutiveDays"`
	TodayChecked    bool `json:"todayChecked"`
}

// Profile is the personalized record returned by /students/me.
type Profile struct {
	ID           int          `json:"id"`
	Name         string       `json:"name"`
	Phone        string       `json:"phone"`
	ClassName    string       `json:"className"`
	AvatarURL    string       `json:"avatarUrl"`
	CheckinStats CheckinStats `json:"checkinStats"`
}

// ScheduleEntry is a single lesson on a given date.
type ScheduleEntry struct {
	ID        int    `json:"id"`
	Date      string `json:"date"` // YYYY-MM-DD
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Subject   string `json:"subject"`
	Teacher   string `json:"teacher"`
	Location  string `json:"location"`
}

// Homework is a list entry from /students/me/homework.
type Homework struct {
	ID         int        `json:"id"`
	Title      string     `json:"title"`
	Subject    string     `json:"subject"`
	Status     string     `json:"status"` // HomeworkPending | HomeworkCompleted
	Deadline   *time.Time `json:"deadline,omitempty"`
	SubmitTime *time.Time `json:"submitTime,omitempty"`
}

func (hw Homework) Completed() bool { return hw.Status == HomeworkCompleted }

// HomeworkDetail adds the full description and submission state.
type HomeworkDetail struct {
	Homework
	Content     string      `json:"content"`
	PublishTime *time.Time  `json:"publishTime,omitempty"`
	Submission  *Submission `json:"submission,omitempty"`
}

type Submission struct {
	Submitted  bool       `json:"submitted"`
	SubmitTime *time.Time `json:"submitTime,omitempty"`
}

// Message is a supervision notice from /students/me/messages.
type Message struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	FullContent string    `json:"fullContent,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Recording is a recorded lesson from /students/me/recordings.
type Recording struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	SubjectID    int    `json:"subjectId"`
	SubjectName  string `json:"subjectName"`
	RecordingURL string `json:"recordingUrl"`
	Duration     int    `json:"duration"` // seconds
}

// LoginResult is the outcome of the code exchange. When NeedBind is set the
// caller must complete the phone-bind flow with SessionKey/OpenID; otherwise
// Token and User are populated and the session has been saved.
type LoginResult struct {
	NeedBind   bool     `json:"needBind"`
	SessionKey string   `json:"sessionKey,omitempty"`
	OpenID     string   `json:"openid,omitempty"`
	Token      string   `json:"token,omitempty"`
	User       *Profile `json:"userInfo,omitempty"`
}

// CheckinResult is the updated streak after a successful check-in.
type CheckinResult struct {
	TotalDays       int `json:"totalDays"`
	ConsecutiveDays int `json:"consecutiveDays"`
}

// CheckinHistory is one month of check-in dates plus the current streak.
type CheckinHistory struct {
	CheckinDates map[string]bool `json:"checkinDates"`
	CurrentStats CheckinStats    `json:"currentStats"`
}

// SubscribeTemplate is a push-message template the user may subscribe to.
type SubscribeTemplate struct {
	TemplateID string `json:"templateId"`
	Title      string `json:"title"`
}

// ChatReply is the tutoring assistant's answer.
type ChatReply struct {
	Reply          string `json:"reply"`
	ConversationID string `json:"conversationId"`
}
