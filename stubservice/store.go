package stubservice

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sort"
	"sync"
	"time"

	"github.com/acat-interview/interview-contract-tests/config"
	"github.com/acat-interview/interview-contract-tests/servicedef"

	"golang.org/x/crypto/bcrypt"
)

// Values of user.firstPass and user.secondPass.
const (
	passUnknown = 0
	passYes     = 1
	passNo      = 2
)

type admin struct {
	id           int
	name         string
	phone        string
	passwordHash []byte
}

type user struct {
	id           int
	name         string
	stuID        string
	phone        string
	email        string
	passwordHash []byte
	gender       int
	direction    int
	firstPass    int
	secondPass   int
}

type slot struct {
	id     int
	round  int
	start  time.Time
	end    time.Time
	num    int
	maxNum int
}

type booking struct {
	slotID    int
	name      string
	direction int
}

type letter struct {
	senderID   int
	receiverID int
	title      string
	content    string
	sentAt     time.Time
}

// Mail is a message the service would have sent. Nothing is actually mailed.
type Mail struct {
	To      string
	Subject string
	Body    string
}

type store struct {
	admins     map[int]*admin
	users      map[int]*user
	slots      map[int]*slot
	bookings   map[int]booking // by user ID
	codes      map[string]string
	letters    []letter
	mails      []Mail
	nextUserID int
	nextSlotID int
	lock       sync.Mutex
}

var seedTime = time.Date(2025, 12, 14, 9, 0, 0, 0, time.Local)

func newStore(f config.Fixtures) (*store, error) {
	s := &store{
		admins:   make(map[int]*admin),
		users:    make(map[int]*user),
		slots:    make(map[int]*slot),
		bookings: make(map[int]booking),
		codes:    make(map[string]string),
	}

	adminHash, err := hashPassword(f.AdminPassword)
	if err != nil {
		return nil, err
	}
	s.admins[f.AdminID] = &admin{id: f.AdminID, name: "admin", phone: f.AdminPhone, passwordHash: adminHash}

	userHash, err := hashPassword(f.UserPassword)
	if err != nil {
		return nil, err
	}
	s.users[f.CandidateUserID] = &user{
		id:           f.CandidateUserID,
		name:         f.UserName,
		stuID:        "2400413000",
		phone:        f.UserPhone,
		email:        f.UserEmail,
		passwordHash: userHash,
		gender:       1,
		direction:    servicedef.DirectionGo,
	}
	s.nextUserID = f.CandidateUserID + 1
	if f.UnknownUserID >= s.nextUserID {
		// registrations must never take the ID the suite expects to be unknown
		s.nextUserID = f.UnknownUserID + 1
	}

	for i, sl := range []struct{ id, round int }{
		{f.ResultSlotID, servicedef.RoundSecond},
		{f.PassSlotID, servicedef.RoundFirst},
		{f.SignupSlotID, servicedef.RoundFirst},
	} {
		start := seedTime.Add(time.Duration(i) * time.Hour)
		s.slots[sl.id] = &slot{id: sl.id, round: sl.round, start: start, end: start.Add(time.Hour), maxNum: 50}
		if sl.id >= s.nextSlotID {
			s.nextSlotID = sl.id + 1
		}
	}
	return s, nil
}

func hashPassword(password string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	return hash, nil
}

func checkPassword(hash []byte, password string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}

func (s *store) adminByPhone(phone string) *admin {
	for _, a := range s.admins {
		if a.phone == phone {
			return a
		}
	}
	return nil
}

func (s *store) userByPhone(phone string) *user {
	for _, u := range s.users {
		if u.phone == phone {
			return u
		}
	}
	return nil
}

func (s *store) userByEmail(email string) *user {
	for _, u := range s.users {
		if u.email == email {
			return u
		}
	}
	return nil
}

func (s *store) bookedUsers(slotID int) []*user {
	var ret []*user
	for uid, b := range s.bookings {
		if b.slotID == slotID {
			if u := s.users[uid]; u != nil {
				ret = append(ret, u)
			}
		}
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].id < ret[j].id })
	return ret
}

func (s *store) book(u *user, sl *slot, name string, direction int) {
	if old, ok := s.bookings[u.id]; ok {
		if prev := s.slots[old.slotID]; prev != nil && prev.num > 0 {
			prev.num--
		}
	}
	sl.num++
	s.bookings[u.id] = booking{slotID: sl.id, name: name, direction: direction}
}

func (s *store) cancel(u *user) {
	old, ok := s.bookings[u.id]
	if !ok {
		return
	}
	if prev := s.slots[old.slotID]; prev != nil && prev.num > 0 {
		prev.num--
	}
	delete(s.bookings, u.id)
}

func newVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
