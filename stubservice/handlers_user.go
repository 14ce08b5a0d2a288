package stubservice

import (
	"time"
	"unicode/utf8"

	"github.com/acat-interview/interview-contract-tests/servicedef"

	"github.com/gin-gonic/gin"
)

const (
	resultPassed = "学生通过面试"
	resultFailed = "学生未通过面试"
)

type registerRequest struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Password   string `json:"password"`
	RePassword string `json:"re_password"`
	Email      string `json:"email"`
	StuID      string `json:"stu_id"`
	Gender     int    `json:"gender"`
	Direction  int    `json:"direction"`
}

type forgetRequest struct {
	Param    string `json:"param"`
	TestMode bool   `json:"test_mode"`
}

type resetPasswordRequest struct {
	Account     string `json:"account"`
	NewPassword string `json:"new_password"`
	Code        string `json:"code"`
}

type resultRequest struct {
	Round int `json:"round"`
}

type signupRequest struct {
	Name      string `json:"name"`
	Direction int    `json:"direction"`
	SlotID    int    `json:"slot_id"`
}

type updateRequest struct {
	Name      string `json:"name"`
	Direction int    `json:"direction"`
	SlotID    int    `json:"slot_id"`
	IsDelete  int    `json:"is_delete"`
}

type conversationRequest struct {
	ReceiveID int    `json:"receive_id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
}

func (s *Service) handleUserLogin(c *gin.Context) {
	var req loginRequest
	if !bind(c, &req) {
		return
	}
	if req.Phone == "" || req.Password == "" {
		reject(c, servicedef.MsgMissingRequiredField)
		return
	}
	if !phonePattern.MatchString(req.Phone) {
		reject(c, servicedef.MsgMalformedParam)
		return
	}

	s.store.lock.Lock()
	u := s.store.userByPhone(req.Phone)
	s.store.lock.Unlock()
	if u == nil || !checkPassword(u.passwordHash, req.Password) {
		reject(c, servicedef.MsgBadCredentials)
		return
	}
	if err := s.setTokenCookie(c, u.id, roleUser); err != nil {
		_ = c.Error(err)
		reject(c, servicedef.MsgBadCredentials)
		return
	}
	ok(c, nil)
}

func (s *Service) handleRegister(c *gin.Context) {
	var req registerRequest
	if !bind(c, &req) {
		return
	}
	if req.Name == "" || req.Phone == "" || req.Password == "" || req.RePassword == "" ||
		req.Email == "" || req.StuID == "" {
		reject(c, servicedef.MsgMissingRequiredField)
		return
	}
	if req.Password != req.RePassword {
		reject(c, servicedef.MsgRegisterPasswordMismatch)
		return
	}
	if !phonePattern.MatchString(req.Phone) || !emailPattern.MatchString(req.Email) {
		reject(c, servicedef.MsgRegisterMalformed)
		return
	}
	hash, err := hashPassword(req.Password)
	if err != nil {
		_ = c.Error(err)
		reject(c, servicedef.MsgRegisterMalformed)
		return
	}

	s.store.lock.Lock()
	defer s.store.lock.Unlock()

	if s.store.userByPhone(req.Phone) != nil {
		reject(c, servicedef.MsgRegisterPhoneExists)
		return
	}
	if s.store.userByEmail(req.Email) != nil {
		reject(c, servicedef.MsgRegisterEmailExists)
		return
	}
	id := s.store.nextUserID
	s.store.nextUserID++
	s.store.users[id] = &user{
		id:           id,
		name:         req.Name,
		stuID:        req.StuID,
		phone:        req.Phone,
		email:        req.Email,
		passwordHash: hash,
		gender:       req.Gender,
		direction:    req.Direction,
	}
	ok(c, gin.H{"uid": id})
}

func (s *Service) handleForget(c *gin.Context) {
	var req forgetRequest
	if !bind(c, &req) {
		return
	}
	if req.Param == "" {
		reject(c, servicedef.MsgForgetEmptyParam)
		return
	}
	if !emailPattern.MatchString(req.Param) {
		reject(c, servicedef.MsgInvalidParam)
		return
	}
	code, err := newVerificationCode()
	if err != nil {
		_ = c.Error(err)
		reject(c, servicedef.MsgInvalidParam)
		return
	}

	s.store.lock.Lock()
	s.store.codes[req.Param] = code
	if !req.TestMode {
		s.store.mails = append(s.store.mails, Mail{To: req.Param, Subject: "验证码", Body: code})
	}
	s.store.lock.Unlock()

	if req.TestMode {
		ok(c, code)
		return
	}
	ok(c, nil)
}

func (s *Service) handleResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if !bind(c, &req) {
		return
	}
	if req.Account == "" || req.NewPassword == "" || req.Code == "" {
		reject(c, servicedef.MsgResetMissingParam)
		return
	}
	if !emailPattern.MatchString(req.Account) {
		reject(c, servicedef.MsgResetBadAccount)
		return
	}

	s.store.lock.Lock()
	defer s.store.lock.Unlock()

	code, issued := s.store.codes[req.Account]
	if !issued {
		reject(c, servicedef.MsgResetCodeNotIssued)
		return
	}
	if code != req.Code {
		reject(c, servicedef.MsgResetCodeMismatch)
		return
	}
	u := s.store.userByEmail(req.Account)
	if u == nil {
		reject(c, servicedef.MsgResetUserNotFound)
		return
	}
	hash, err := hashPassword(req.NewPassword)
	if err != nil {
		_ = c.Error(err)
		reject(c, servicedef.MsgResetUserNotFound)
		return
	}
	u.passwordHash = hash
	delete(s.store.codes, req.Account)
	ok(c, nil)
}

func (s *Service) handleResult(c *gin.Context) {
	var req resultRequest
	if !bind(c, &req) {
		return
	}
	if !validRound(req.Round) {
		reject(c, servicedef.MsgInvalidParam)
		return
	}

	s.store.lock.Lock()
	defer s.store.lock.Unlock()

	u := s.store.users[callerID(c)]
	if u == nil {
		reject(c, servicedef.MsgUserNotFound)
		return
	}
	pass := u.firstPass
	if req.Round == servicedef.RoundSecond {
		pass = u.secondPass
	}
	if pass == passYes {
		ok(c, resultPassed)
		return
	}
	ok(c, resultFailed)
}

func (s *Service) handleSignup(c *gin.Context) {
	var req signupRequest
	if !bind(c, &req) {
		return
	}

	s.store.lock.Lock()
	defer s.store.lock.Unlock()

	sl := s.store.slots[req.SlotID]
	if sl == nil {
		reject(c, servicedef.MsgSignupSlotNotFound)
		return
	}
	u := s.store.users[callerID(c)]
	if u == nil {
		reject(c, servicedef.MsgUserNotFound)
		return
	}
	if _, booked := s.store.bookings[u.id]; booked {
		reject(c, servicedef.MsgSignupAlreadyBooked)
		return
	}
	if msg := s.checkBookable(u, sl); msg != "" {
		reject(c, msg)
		return
	}
	s.store.book(u, sl, req.Name, req.Direction)
	ok(c, nil)
}

func (s *Service) handleUpdate(c *gin.Context) {
	var req updateRequest
	if !bind(c, &req) {
		return
	}

	s.store.lock.Lock()
	defer s.store.lock.Unlock()

	sl := s.store.slots[req.SlotID]
	if sl == nil {
		reject(c, servicedef.MsgUpdateSlotNotFound)
		return
	}
	u := s.store.users[callerID(c)]
	if u == nil {
		reject(c, servicedef.MsgUserNotFound)
		return
	}

	switch req.IsDelete {
	case 1:
		s.store.cancel(u)
	case 0:
		if current, booked := s.store.bookings[u.id]; booked && current.slotID == sl.id {
			s.store.bookings[u.id] = booking{slotID: sl.id, name: req.Name, direction: req.Direction}
			break
		}
		if msg := s.checkBookable(u, sl); msg != "" {
			reject(c, msg)
			return
		}
		s.store.book(u, sl, req.Name, req.Direction)
	default:
		reject(c, servicedef.MsgInvalidParam)
		return
	}
	ok(c, nil)
}

// checkBookable must be called with the store locked.
func (s *Service) checkBookable(u *user, sl *slot) string {
	if sl.round == servicedef.RoundSecond && u.firstPass != passYes {
		return servicedef.MsgSignupFirstRoundFailed
	}
	if sl.num >= sl.maxNum {
		return servicedef.MsgSlotFull
	}
	return ""
}

func (s *Service) handleConversation(c *gin.Context) {
	var req conversationRequest
	if !bind(c, &req) {
		return
	}
	if req.Title == "" {
		reject(c, servicedef.MsgConversationNoTitle)
		return
	}
	if utf8.RuneCountInString(req.Content) > servicedef.MaxConversationContentLength {
		reject(c, servicedef.MsgConversationTooLong)
		return
	}

	s.store.lock.Lock()
	defer s.store.lock.Unlock()

	if s.store.admins[req.ReceiveID] == nil {
		reject(c, servicedef.MsgConversationNoRecipient)
		return
	}
	s.store.letters = append(s.store.letters, letter{
		senderID:   callerID(c),
		receiverID: req.ReceiveID,
		title:      req.Title,
		content:    req.Content,
		sentAt:     time.Now(),
	})
	ok(c, nil)
}
