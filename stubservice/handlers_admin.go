package stubservice

import (
	"fmt"
	"regexp"
	"time"

	"github.com/acat-interview/interview-contract-tests/servicedef"

	"github.com/gin-gonic/gin"
)

var (
	phonePattern = regexp.MustCompile(`^1[3-9]\d{9}$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

type loginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type postEmailRequest struct {
	UserID    int    `json:"user_id"`
	Name      string `json:"name"`
	Round     int    `json:"round"`
	Email     string `json:"email"`
	Customize bool   `json:"customize"`
	Content   string `json:"content"`
	TestMode  bool   `json:"test_mode"`
}

type setPassRequest struct {
	UserID int  `json:"user_id"`
	SlotID int  `json:"slot_id"`
	Round  int  `json:"round"`
	IsPass *int `json:"is_pass"`
}

type setResultRequest struct {
	SlotID int `json:"slot_id"`
	Round  int `json:"round"`
}

type setScheduleRequest struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	MaxNum    int    `json:"max_num"`
	Round     int    `json:"round"`
}

type candidateResult struct {
	Name  string `json:"name"`
	StuID string `json:"stu_id"`
	Pass  bool   `json:"pass"`
	Round int    `json:"round"`
}

func validRound(round int) bool {
	return round == servicedef.RoundFirst || round == servicedef.RoundSecond
}

func (s *Service) handleAdminLogin(c *gin.Context) {
	var req loginRequest
	if !bind(c, &req) {
		return
	}
	if req.Phone == "" || req.Password == "" {
		reject(c, servicedef.MsgMissingRequiredField)
		return
	}

	s.store.lock.Lock()
	a := s.store.adminByPhone(req.Phone)
	s.store.lock.Unlock()
	if a == nil || !checkPassword(a.passwordHash, req.Password) {
		reject(c, servicedef.MsgAdminLoginFailed)
		return
	}
	if err := s.setTokenCookie(c, a.id, roleAdmin); err != nil {
		_ = c.Error(err)
		reject(c, servicedef.MsgAdminLoginFailed)
		return
	}
	ok(c, nil)
}

func (s *Service) handlePostEmail(c *gin.Context) {
	var req postEmailRequest
	if !bind(c, &req) {
		return
	}

	s.store.lock.Lock()
	defer s.store.lock.Unlock()

	u := s.store.users[req.UserID]
	if u == nil {
		reject(c, servicedef.MsgUserNotFound)
		return
	}
	to := req.Email
	if to == "" {
		to = u.email
	}
	if !emailPattern.MatchString(to) {
		reject(c, servicedef.MsgInvalidParam)
		return
	}
	name := req.Name
	if name == "" {
		name = u.name
	}

	var mail Mail
	if req.Customize {
		if req.Content == "" {
			reject(c, servicedef.MsgMissingRequiredField)
			return
		}
		mail = Mail{To: to, Subject: "面试通知", Body: req.Content}
	} else {
		if !validRound(req.Round) {
			reject(c, servicedef.MsgInvalidParam)
			return
		}
		body := req.Content
		if body == "" {
			body = fmt.Sprintf("%s同学，恭喜你通过第%d轮面试。", name, req.Round)
		}
		mail = Mail{To: to, Subject: fmt.Sprintf("第%d轮面试结果", req.Round), Body: body}
	}
	s.store.mails = append(s.store.mails, mail)

	if req.TestMode {
		ok(c, mail.Body)
		return
	}
	ok(c, nil)
}

func (s *Service) handleSetPass(c *gin.Context) {
	var req setPassRequest
	if !bind(c, &req) {
		return
	}
	if !validRound(req.Round) {
		reject(c, servicedef.MsgInvalidParam)
		return
	}
	if req.IsPass == nil {
		reject(c, servicedef.MsgMissingRequiredField)
		return
	}
	if *req.IsPass != servicedef.PassFlagPassed && *req.IsPass != servicedef.PassFlagFailed {
		reject(c, servicedef.MsgInvalidParam)
		return
	}

	s.store.lock.Lock()
	defer s.store.lock.Unlock()

	u := s.store.users[req.UserID]
	if u == nil {
		reject(c, servicedef.MsgPassUserNotFound)
		return
	}
	if s.store.slots[req.SlotID] == nil {
		reject(c, servicedef.MsgSlotNotFound)
		return
	}
	if req.Round == servicedef.RoundSecond && u.firstPass == passNo {
		reject(c, servicedef.MsgSecondRoundBlocked)
		return
	}

	result := passNo
	if *req.IsPass == servicedef.PassFlagPassed {
		result = passYes
	}
	if req.Round == servicedef.RoundFirst {
		u.firstPass = result
	} else {
		u.secondPass = result
	}
	ok(c, nil)
}

func (s *Service) handleSetResult(c *gin.Context) {
	var req setResultRequest
	if !bind(c, &req) {
		return
	}
	if !validRound(req.Round) {
		reject(c, servicedef.MsgInvalidParam)
		return
	}

	s.store.lock.Lock()
	defer s.store.lock.Unlock()

	if s.store.slots[req.SlotID] == nil {
		reject(c, servicedef.MsgSlotNotFound)
		return
	}
	results := []candidateResult{}
	for _, u := range s.store.bookedUsers(req.SlotID) {
		pass := u.firstPass
		if req.Round == servicedef.RoundSecond {
			pass = u.secondPass
		}
		results = append(results, candidateResult{Name: u.name, StuID: u.stuID, Pass: pass == passYes, Round: req.Round})
	}
	ok(c, results)
}

func (s *Service) handleSetSchedule(c *gin.Context) {
	var req setScheduleRequest
	if !bind(c, &req) {
		return
	}
	if req.StartTime == "" || req.EndTime == "" {
		reject(c, servicedef.MsgMissingRequiredField)
		return
	}
	start, err1 := time.ParseInLocation(servicedef.DateTimeLocalFormat, req.StartTime, time.Local)
	end, err2 := time.ParseInLocation(servicedef.DateTimeLocalFormat, req.EndTime, time.Local)
	if err1 != nil || err2 != nil || !start.Before(end) {
		reject(c, servicedef.MsgScheduleBadTimeRange)
		return
	}
	if !validRound(req.Round) {
		reject(c, servicedef.MsgScheduleBadRound)
		return
	}
	if req.MaxNum < servicedef.MinSlotCapacity || req.MaxNum > servicedef.MaxSlotCapacity {
		reject(c, servicedef.MsgScheduleBadCapacity)
		return
	}

	s.store.lock.Lock()
	defer s.store.lock.Unlock()

	id := s.store.nextSlotID
	s.store.nextSlotID++
	s.store.slots[id] = &slot{id: id, round: req.Round, start: start, end: end, maxNum: req.MaxNum}
	ok(c, gin.H{"slot_id": id})
}
