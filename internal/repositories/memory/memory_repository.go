// Package memory provides an in-memory Repository. It backs handler and
// service tests that need real store semantics (unique email, unique
// enrollment pair, cascades) without a database.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/EduFlow-2025/learning-service/internal/models"
	"github.com/EduFlow-2025/learning-service/internal/repositories"
)

type Repository struct {
	mu          sync.Mutex
	users       map[string]*models.User
	profiles    map[string]*models.Profile
	courses     map[string]*models.Course
	lessons     map[string]*models.Lesson
	enrollments map[string]*models.Enrollment
}

func New() *Repository {
	return &Repository{
		users:       make(map[string]*models.User),
		profiles:    make(map[string]*models.Profile),
		courses:     make(map[string]*models.Course),
		lessons:     make(map[string]*models.Lesson),
		enrollments: make(map[string]*models.Enrollment),
	}
}

func (m *Repository) User() repositories.UserRepository             { return &userStore{m} }
func (m *Repository) Profile() repositories.ProfileRepository      { return &profileStore{m} }
func (m *Repository) Course() repositories.CourseRepository        { return &courseStore{m} }
func (m *Repository) Lesson() repositories.LessonRepository        { return &lessonStore{m} }
func (m *Repository) Enrollment() repositories.EnrollmentRepository { return &enrollmentStore{m} }

// WithTransaction runs fn against the same repository. Writes are not
// rolled back on error; tests that need rollback semantics assert on the
// error instead.
func (m *Repository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

func (m *Repository) Ping(ctx context.Context) error { return nil }
func (m *Repository) Close() error                   { return nil }

// ===== USERS =====

type userStore struct{ r *Repository }

func (u *userStore) Create(ctx context.Context, user *models.User) error {
	u.r.mu.Lock()
	defer u.r.mu.Unlock()

	user.Email = strings.ToLower(user.Email)
	for _, existing := range u.r.users {
		if existing.Email == user.Email {
			return repositories.ErrDuplicateKey
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now()
	copied := *user
	u.r.users[user.ID] = &copied
	return nil
}

func (u *userStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	u.r.mu.Lock()
	defer u.r.mu.Unlock()

	user, ok := u.r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (u *userStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u.r.mu.Lock()
	defer u.r.mu.Unlock()

	for _, user := range u.r.users {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (u *userStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := u.GetByEmail(ctx, email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ===== PROFILES =====

type profileStore struct{ r *Repository }

func (p *profileStore) Create(ctx context.Context, profile *models.Profile) error {
	p.r.mu.Lock()
	defer p.r.mu.Unlock()

	if _, ok := p.r.profiles[profile.UserID]; ok {
		return repositories.ErrDuplicateKey
	}
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	copied := *profile
	p.r.profiles[profile.UserID] = &copied
	return nil
}

func (p *profileStore) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	p.r.mu.Lock()
	defer p.r.mu.Unlock()

	profile, ok := p.r.profiles[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *profile
	return &copied, nil
}

func (p *profileStore) Update(ctx context.Context, profile *models.Profile) error {
	p.r.mu.Lock()
	defer p.r.mu.Unlock()

	if _, ok := p.r.profiles[profile.UserID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *profile
	p.r.profiles[profile.UserID] = &copied
	return nil
}

// ===== COURSES =====

type courseStore struct{ r *Repository }

func (c *courseStore) Create(ctx context.Context, course *models.Course) error {
	c.r.mu.Lock()
	defer c.r.mu.Unlock()

	if course.ID == "" {
		course.ID = uuid.New().String()
	}
	course.CreatedAt = time.Now()
	copied := *course
	c.r.courses[course.ID] = &copied
	return nil
}

func (c *courseStore) GetByID(ctx context.Context, id string) (*models.Course, error) {
	c.r.mu.Lock()
	defer c.r.mu.Unlock()

	course, ok := c.r.courses[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *course
	return &copied, nil
}

func (c *courseStore) GetByIDWithInstructor(ctx context.Context, id string) (*models.Course, error) {
	course, err := c.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.r.mu.Lock()
	defer c.r.mu.Unlock()
	if instructor, ok := c.r.users[course.InstructorID]; ok {
		copied := *instructor
		course.Instructor = &copied
	}
	return course, nil
}

func (c *courseStore) Update(ctx context.Context, course *models.Course) error {
	c.r.mu.Lock()
	defer c.r.mu.Unlock()

	if _, ok := c.r.courses[course.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *course
	c.r.courses[course.ID] = &copied
	return nil
}

func (c *courseStore) Delete(ctx context.Context, id string) error {
	c.r.mu.Lock()
	defer c.r.mu.Unlock()

	if _, ok := c.r.courses[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(c.r.courses, id)
	return nil
}

func (c *courseStore) List(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	c.r.mu.Lock()
	defer c.r.mu.Unlock()

	var courses []*models.Course
	for _, course := range c.r.courses {
		if filters.InstructorID != nil && course.InstructorID != *filters.InstructorID {
			continue
		}
		copied := *course
		courses = append(courses, &copied)
	}
	sort.Slice(courses, func(i, j int) bool {
		return courses[i].CreatedAt.After(courses[j].CreatedAt)
	})
	return courses, int64(len(courses)), nil
}

func (c *courseStore) GetByInstructor(ctx context.Context, instructorID string, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	filters.InstructorID = &instructorID
	return c.List(ctx, filters)
}

// ===== LESSONS =====

type lessonStore struct{ r *Repository }

func (l *lessonStore) Create(ctx context.Context, lesson *models.Lesson) error {
	l.r.mu.Lock()
	defer l.r.mu.Unlock()

	if lesson.ID == "" {
		lesson.ID = uuid.New().String()
	}
	lesson.CreatedAt = time.Now()
	copied := *lesson
	l.r.lessons[lesson.ID] = &copied
	return nil
}

func (l *lessonStore) GetByID(ctx context.Context, id string) (*models.Lesson, error) {
	l.r.mu.Lock()
	defer l.r.mu.Unlock()

	lesson, ok := l.r.lessons[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *lesson
	return &copied, nil
}

func (l *lessonStore) Update(ctx context.Context, lesson *models.Lesson) error {
	l.r.mu.Lock()
	defer l.r.mu.Unlock()

	if _, ok := l.r.lessons[lesson.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *lesson
	l.r.lessons[lesson.ID] = &copied
	return nil
}

func (l *lessonStore) Delete(ctx context.Context, id string) error {
	l.r.mu.Lock()
	defer l.r.mu.Unlock()

	if _, ok := l.r.lessons[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(l.r.lessons, id)
	return nil
}

func (l *lessonStore) GetByCourse(ctx context.Context, courseID string) ([]*models.Lesson, error) {
	l.r.mu.Lock()
	defer l.r.mu.Unlock()

	var lessons []*models.Lesson
	for _, lesson := range l.r.lessons {
		if lesson.CourseID == courseID {
			copied := *lesson
			lessons = append(lessons, &copied)
		}
	}
	sort.SliceStable(lessons, func(i, j int) bool {
		if lessons[i].Order != lessons[j].Order {
			return lessons[i].Order < lessons[j].Order
		}
		return lessons[i].CreatedAt.Before(lessons[j].CreatedAt)
	})
	return lessons, nil
}

func (l *lessonStore) DeleteByCourse(ctx context.Context, courseID string) error {
	l.r.mu.Lock()
	defer l.r.mu.Unlock()

	for id, lesson := range l.r.lessons {
		if lesson.CourseID == courseID {
			delete(l.r.lessons, id)
		}
	}
	return nil
}

// ===== ENROLLMENTS =====

type enrollmentStore struct{ r *Repository }

func (e *enrollmentStore) Create(ctx context.Context, enrollment *models.Enrollment) error {
	e.r.mu.Lock()
	defer e.r.mu.Unlock()

	for _, existing := range e.r.enrollments {
		if existing.UserID == enrollment.UserID && existing.CourseID == enrollment.CourseID {
			return repositories.ErrDuplicateKey
		}
	}
	if enrollment.ID == "" {
		enrollment.ID = uuid.New().String()
	}
	enrollment.CreatedAt = time.Now()
	copied := *enrollment
	copied.Course = nil
	copied.User = nil
	e.r.enrollments[enrollment.ID] = &copied
	return nil
}

func (e *enrollmentStore) GetByID(ctx context.Context, id string) (*models.Enrollment, error) {
	e.r.mu.Lock()
	defer e.r.mu.Unlock()

	enrollment, ok := e.r.enrollments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *enrollment
	return &copied, nil
}

func (e *enrollmentStore) GetByUser(ctx context.Context, userID string) ([]*models.Enrollment, error) {
	e.r.mu.Lock()
	defer e.r.mu.Unlock()

	var enrollments []*models.Enrollment
	for _, enrollment := range e.r.enrollments {
		if enrollment.UserID != userID {
			continue
		}
		copied := *enrollment
		if course, ok := e.r.courses[enrollment.CourseID]; ok {
			courseCopy := *course
			if instructor, ok := e.r.users[course.InstructorID]; ok {
				instructorCopy := *instructor
				courseCopy.Instructor = &instructorCopy
			}
			copied.Course = &courseCopy
		}
		enrollments = append(enrollments, &copied)
	}
	sort.Slice(enrollments, func(i, j int) bool {
		return enrollments[i].CreatedAt.After(enrollments[j].CreatedAt)
	})
	return enrollments, nil
}

func (e *enrollmentStore) GetByCourse(ctx context.Context, courseID string) ([]*models.Enrollment, error) {
	e.r.mu.Lock()
	defer e.r.mu.Unlock()

	var enrollments []*models.Enrollment
	for _, enrollment := range e.r.enrollments {
		if enrollment.CourseID != courseID {
			continue
		}
		copied := *enrollment
		if user, ok := e.r.users[enrollment.UserID]; ok {
			userCopy := *user
			copied.User = &userCopy
		}
		enrollments = append(enrollments, &copied)
	}
	sort.Slice(enrollments, func(i, j int) bool {
		return enrollments[i].CreatedAt.Before(enrollments[j].CreatedAt)
	})
	return enrollments, nil
}

func (e *enrollmentStore) Delete(ctx context.Context, id string) error {
	e.r.mu.Lock()
	defer e.r.mu.Unlock()

	if _, ok := e.r.enrollments[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(e.r.enrollments, id)
	return nil
}

func (e *enrollmentStore) ExistsByUserAndCourse(ctx context.Context, userID, courseID string) (bool, error) {
	e.r.mu.Lock()
	defer e.r.mu.Unlock()

	for _, enrollment := range e.r.enrollments {
		if enrollment.UserID == userID && enrollment.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (e *enrollmentStore) CountByCourse(ctx context.Context, courseID string) (int64, error) {
	e.r.mu.Lock()
	defer e.r.mu.Unlock()

	var count int64
	for _, enrollment := range e.r.enrollments {
		if enrollment.CourseID == courseID {
			count++
		}
	}
	return count, nil
}
