package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkaya/campusdesk/internal/app/integrity"
)

// Repositories holds all repository instances
type Repositories struct {
	Users      *UserRepository
	Courses    *CourseRepository
	Students   *StudentRepository
	Modules    *ModuleRepository
	Attendance *AttendanceRepository
	Surveys    *SurveyRepository
	Deadlines  *DeadlineRepository
	Grades     *GradeRepository
}

// NewRepositories creates all repositories sharing one pool and one guard
func NewRepositories(db *pgxpool.Pool, guard *integrity.RoleGuard) *Repositories {
	return &Repositories{
		Users:      NewUserRepository(db),
		Courses:    NewCourseRepository(db),
		Students:   NewStudentRepository(db, guard),
		Modules:    NewModuleRepository(db, guard),
		Attendance: NewAttendanceRepository(db, guard),
		Surveys:    NewSurveyRepository(db, guard),
		Deadlines:  NewDeadlineRepository(db, guard),
		Grades:     NewGradeRepository(db, guard),
	}
}
