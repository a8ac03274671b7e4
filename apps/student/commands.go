package main

import (
	"context"
	"fmt"

	"github.com/chaimtop/studygo/core/calendar"
	"github.com/chaimtop/studygo/core/student"
)

func (cli *commandLine) login(ctx context.Context, code string) error {
	res, err := cli.svc.Login(ctx, code)
	if err != nil {
		return err
	}
	if res.NeedBind {
		fmt.Println("phone binding required; run:")
		fmt.Printf("  student bindphone -openid %s -sessionkey %s -phone <number>\n", res.OpenID, res.SessionKey)
		return nil
	}
	fmt.Println("登录成功")
	if res.User != nil {
		fmt.Printf("welcome, %s\n", res.User.Name)
	}
	return nil
}

func (cli *commandLine) bindPhone(ctx context.Context, openID, sessionKey, phone string) error {
	res, err := cli.svc.BindPhone(ctx, student.BindPhoneInput{
		OpenID:     openID,
		SessionKey: sessionKey,
		Phone:      phone,
	})
	if err != nil {
		return err
	}
	fmt.Println("绑定成功")
	if res.User != nil {
		fmt.Printf("welcome, %s\n", res.User.Name)
	}
	return nil
}

func (cli *commandLine) me(ctx context.Context) error {
	if err := cli.requireAuth(); err != nil {
		return err
	}
	p, err := cli.svc.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s) %s\n", p.Name, p.ClassName, p.Phone)
	fmt.Printf("check-ins: %d total, %d consecutive", p.CheckinStats.TotalDays, p.CheckinStats.ConsecutiveDays)
	if p.CheckinStats.TodayChecked {
		fmt.Print(", today done")
	}
	fmt.Println()
	if exp, ok := cli.session.TokenExpiry(); ok {
		fmt.Printf("session valid until %s\n", exp.Format("2006-01-02 15:04"))
	}
	return nil
}

func (cli *commandLine) schedule(ctx context.Context, date string, week bool) error {
	if err := cli.requireAuth(); err != nil {
		return err
	}
	schedules, err := cli.svc.Schedule(ctx, date, week)
	if err != nil {
		return err
	}
	if !week {
		fmt.Printf("%s:\n", date)
		printSchedules(schedules)
		return nil
	}

	days, err := calendar.GroupByWeek(schedules, date)
	if err != nil {
		return err
	}
	for _, day := range days {
		marker := " "
		if day.Today {
			marker = "*"
		}
		fmt.Printf("%s %s %s\n", marker, day.Label, day.Date)
		printSchedules(day.Schedules)
	}
	return nil
}

func printSchedules(schedules []student.ScheduleEntry) {
	if len(schedules) == 0 {
		fmt.Println("    (no lessons)")
		return
	}
	for _, s := range schedules {
		fmt.Printf("    %s-%s %s %s %s\n", s.StartTime, s.EndTime, s.Subject, s.Teacher, s.Location)
	}
}

func (cli *commandLine) checkin(ctx context.Context) error {
	if err := cli.requireAuth(); err != nil {
		return err
	}
	res, err := cli.svc.Checkin(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("打卡成功: %d total, %d consecutive\n", res.TotalDays, res.ConsecutiveDays)
	return nil
}

func (cli *commandLine) calendar(ctx context.Context, year, month int) error {
	if err := cli.requireAuth(); err != nil {
		return err
	}
	history, err := cli.svc.CheckinHistory(ctx, year, month)
	if err != nil {
		return err
	}
	grid := calendar.MonthGrid(year, month, history.CheckinDates, calendar.Today())

	fmt.Printf("%04d-%02d: %d total, %d consecutive\n",
		year, month, history.CurrentStats.TotalDays, history.CurrentStats.ConsecutiveDays)
	fmt.Println(" 日  一  二  三  四  五  六")
	for _, week := range grid {
		for _, cell := range week {
			switch {
			case cell.Day == 0:
				fmt.Print("    ")
			case cell.Checked:
				fmt.Printf("[%2d]", cell.Day)
			default:
				fmt.Printf(" %2d ", cell.Day)
			}
		}
		fmt.Println()
	}
	return nil
}

func (cli *commandLine) homework(ctx context.Context, id, done int) error {
	if err := cli.requireAuth(); err != nil {
		return err
	}
	if done != 0 {
		if err := cli.svc.CompleteHomework(ctx, done); err != nil {
			return err
		}
		fmt.Println("提交成功")
		return nil
	}
	if id != 0 {
		detail, err := cli.svc.HomeworkDetail(ctx, id)
		if err != nil {
			return err
		}
		fmt.Printf("%s [%s] %s\n", detail.Title, detail.Subject, detail.Status)
		if detail.Deadline != nil {
			fmt.Printf("deadline: %s\n", detail.Deadline.Format("2006-01-02 15:04"))
		}
		fmt.Println(detail.Content)
		return nil
	}

	items, err := cli.svc.HomeworkList(ctx)
	if err != nil {
		return err
	}
	pending, completed := student.SplitHomework(items)
	fmt.Printf("pending (%d):\n", len(pending))
	for _, hw := range pending {
		fmt.Printf("  #%d %s [%s]\n", hw.ID, hw.Title, hw.Subject)
	}
	fmt.Printf("completed (%d):\n", len(completed))
	for _, hw := range completed {
		fmt.Printf("  #%d %s [%s]\n", hw.ID, hw.Title, hw.Subject)
	}
	return nil
}

func (cli *commandLine) messages(ctx context.Context, all bool) error {
	if err := cli.requireAuth(); err != nil {
		return err
	}
	pager := cli.svc.MessagesPager(cli.conf.PageSize)
	if err := pager.Reset(ctx); err != nil {
		return err
	}
	for all && pager.State().HasMore {
		if err := pager.LoadMore(ctx); err != nil {
			return err
		}
	}
	state := pager.State()
	for _, msg := range state.Items {
		fmt.Printf("#%d %s %s\n", msg.ID, msg.CreatedAt.Format("01-02 15:04"), msg.Title)
	}
	fmt.Printf("%d of %d\n", len(state.Items), state.Total)
	return nil
}

func (cli *commandLine) recordings(ctx context.Context, subjectID int, all bool) error {
	if err := cli.requireAuth(); err != nil {
		return err
	}
	pager := cli.svc.RecordingsPager(subjectID, cli.conf.PageSize)
	if err := pager.Reset(ctx); err != nil {
		return err
	}
	for all && pager.State().HasMore {
		if err := pager.LoadMore(ctx); err != nil {
			return err
		}
	}
	state := pager.State()
	for _, rec := range state.Items {
		fmt.Printf("#%d [%s] %s %s\n", rec.ID, rec.SubjectName, rec.Title, rec.RecordingURL)
	}
	fmt.Printf("%d of %d\n", len(state.Items), state.Total)
	return nil
}

func (cli *commandLine) chat(ctx context.Context, message, conversationID string) error {
	if err := cli.requireAuth(); err != nil {
		return err
	}
	reply, err := cli.svc.Chat(ctx, student.ChatInput{Message: message, ConversationID: conversationID})
	if err != nil {
		return err
	}
	fmt.Println(reply.Reply)
	if reply.ConversationID != "" {
		fmt.Printf("(conversation %s)\n", reply.ConversationID)
	}
	return nil
}
