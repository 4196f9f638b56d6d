package services

import (
	"context"
	"errors"
	"testing"

	"github.com/EduFlow-2025/learning-service/internal/models"
	"github.com/EduFlow-2025/learning-service/internal/repositories"
	"github.com/EduFlow-2025/learning-service/internal/repositories/memory"
)

func newCourseService(repo *memory.Repository) CourseService {
	return NewCourseService(repo, nil, testLogger(), testValidator())
}

func TestCourseService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("instructor creates course", func(t *testing.T) {
		repo := memory.New()
		svc := newCourseService(repo)
		instructor := seedUser(t, repo, "Ana", "ana@example.com", models.RoleInstructor)

		resp, err := svc.Create(ctx, &CreateCourseRequest{
			Title:       "CS101",
			Description: "Intro to computing",
		}, instructorSubject(instructor))
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if resp.InstructorID != instructor.ID {
			t.Errorf("Create() instructor = %v, want %v", resp.InstructorID, instructor.ID)
		}
		if !resp.CanEdit || !resp.CanDelete {
			t.Error("Create() owner should get can_edit and can_delete")
		}
	})

	t.Run("student is denied", func(t *testing.T) {
		repo := memory.New()
		svc := newCourseService(repo)
		student := seedUser(t, repo, "Bo", "bo@example.com", models.RoleStudent)

		_, err := svc.Create(ctx, &CreateCourseRequest{
			Title:       "CS101",
			Description: "Intro to computing",
		}, studentSubject(student))
		if !IsPermissionError(err) {
			t.Errorf("Create() error = %v, want PermissionError", err)
		}
	})
}

func TestCourseService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("owner updates whole record", func(t *testing.T) {
		repo := memory.New()
		svc := newCourseService(repo)
		instructor := seedUser(t, repo, "Ana", "ana@example.com", models.RoleInstructor)
		course := seedCourse(t, repo, "CS101", instructor.ID)

		resp, err := svc.Update(ctx, course.ID, &UpdateCourseRequest{
			Title:       "CS101 Revised",
			Description: "Updated description",
		}, instructorSubject(instructor))
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if resp.Title != "CS101 Revised" {
			t.Errorf("Update() title = %v", resp.Title)
		}
	})

	t.Run("other instructor is denied", func(t *testing.T) {
		repo := memory.New()
		svc := newCourseService(repo)
		owner := seedUser(t, repo, "Ana", "ana@example.com", models.RoleInstructor)
		other := seedUser(t, repo, "Cal", "cal@example.com", models.RoleInstructor)
		course := seedCourse(t, repo, "CS101", owner.ID)

		_, err := svc.Update(ctx, course.ID, &UpdateCourseRequest{
			Title:       "Hijacked",
			Description: "nope",
		}, instructorSubject(other))
		if !IsPermissionError(err) {
			t.Errorf("Update() error = %v, want PermissionError", err)
		}
	})

	t.Run("missing course is not found, not forbidden", func(t *testing.T) {
		repo := memory.New()
		svc := newCourseService(repo)
		student := seedUser(t, repo, "Bo", "bo@example.com", models.RoleStudent)

		_, err := svc.Update(ctx, "missing-id", &UpdateCourseRequest{
			Title:       "X",
			Description: "Y",
		}, studentSubject(student))
		if !errors.Is(err, ErrCourseNotFound) {
			t.Errorf("Update() error = %v, want ErrCourseNotFound", err)
		}
	})
}

func TestCourseService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("cascades lessons with the course", func(t *testing.T) {
		repo := memory.New()
		courseSvc := newCourseService(repo)
		lessonSvc := NewLessonService(repo, nil, testLogger(), testValidator())
		instructor := seedUser(t, repo, "Ana", "ana@example.com", models.RoleInstructor)
		course := seedCourse(t, repo, "CS101", instructor.ID)

		for _, title := range []string{"Week 1", "Week 2"} {
			_, err := lessonSvc.Create(ctx, course.ID, &CreateLessonRequest{
				Title:   title,
				Content: "material",
			}, instructorSubject(instructor))
			if err != nil {
				t.Fatalf("lesson Create() error = %v", err)
			}
		}

		if err := courseSvc.Delete(ctx, course.ID, instructorSubject(instructor)); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}

		if _, err := repo.Course().GetByID(ctx, course.ID); !repositories.IsNotFoundError(err) {
			t.Errorf("course still present after delete: %v", err)
		}
		lessons, err := repo.Lesson().GetByCourse(ctx, course.ID)
		if err != nil {
			t.Fatalf("GetByCourse() error = %v", err)
		}
		if len(lessons) != 0 {
			t.Errorf("lessons after delete = %d, want 0", len(lessons))
		}
	})

	t.Run("non-owner is denied", func(t *testing.T) {
		repo := memory.New()
		svc := newCourseService(repo)
		owner := seedUser(t, repo, "Ana", "ana@example.com", models.RoleInstructor)
		other := seedUser(t, repo, "Cal", "cal@example.com", models.RoleInstructor)
		course := seedCourse(t, repo, "CS101", owner.ID)

		if err := svc.Delete(ctx, course.ID, instructorSubject(other)); !IsPermissionError(err) {
			t.Errorf("Delete() error = %v, want PermissionError", err)
		}
	})
}

func TestCourseService_GetByID(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	svc := newCourseService(repo)
	instructor := seedUser(t, repo, "Ana", "ana@example.com", models.RoleInstructor)
	course := seedCourse(t, repo, "CS101", instructor.ID)

	t.Run("resolves instructor", func(t *testing.T) {
		resp, err := svc.GetByID(ctx, course.ID, "")
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if resp.Instructor == nil || resp.Instructor.Name != "Ana" {
			t.Errorf("GetByID() instructor = %+v", resp.Instructor)
		}
		if resp.CanEdit {
			t.Error("anonymous reader should not get can_edit")
		}
	})

	t.Run("includes ordered lessons", func(t *testing.T) {
		for _, l := range []struct {
			title string
			order int
		}{{"Week 2", 2}, {"Week 1", 1}} {
			err := repo.Lesson().Create(ctx, &models.Lesson{
				CourseID: course.ID,
				Title:    l.title,
				Content:  "material",
				Order:    l.order,
			})
			if err != nil {
				t.Fatalf("Create lesson: %v", err)
			}
		}

		resp, err := svc.GetByID(ctx, course.ID, "")
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if len(resp.Lessons) != 2 {
			t.Fatalf("GetByID() lessons = %d, want 2", len(resp.Lessons))
		}
		if resp.Lessons[0].Title != "Week 1" || resp.Lessons[1].Title != "Week 2" {
			t.Errorf("GetByID() lesson order = %q, %q", resp.Lessons[0].Title, resp.Lessons[1].Title)
		}
	})

	t.Run("missing course", func(t *testing.T) {
		if _, err := svc.GetByID(ctx, "missing-id", ""); !errors.Is(err, ErrCourseNotFound) {
			t.Errorf("GetByID() error = %v, want ErrCourseNotFound", err)
		}
	})
}

func TestCourseService_ListByInstructor(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	svc := newCourseService(repo)
	ana := seedUser(t, repo, "Ana", "ana@example.com", models.RoleInstructor)
	cal := seedUser(t, repo, "Cal", "cal@example.com", models.RoleInstructor)
	seedCourse(t, repo, "CS101", ana.ID)
	seedCourse(t, repo, "CS102", ana.ID)
	seedCourse(t, repo, "Art History", cal.ID)

	resp, err := svc.ListByInstructor(ctx, ana.ID, CourseFilters{})
	if err != nil {
		t.Fatalf("ListByInstructor() error = %v", err)
	}
	if resp.Total != 2 {
		t.Errorf("ListByInstructor() total = %d, want 2", resp.Total)
	}
	for _, course := range resp.Courses {
		if course.InstructorID != ana.ID {
			t.Errorf("listed foreign course %s", course.ID)
		}
	}
}
