package profiles

import (
	"context"
	"sort"
	"strings"
	"time"

	"staff-portal-backend/lib/dataservice"
	profilestore "staff-portal-backend/lib/profiles/store"
	"staff-portal-backend/lib/remote"
	"staff-portal-backend/lib/utils/helpers"
	"staff-portal-backend/lib/utils/lock"
	"staff-portal-backend/models"
	profileapimodels "staff-portal-backend/models/api/profile"
	dbmodels "staff-portal-backend/models/db"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const DefaultFetchTimeout = 30 * time.Second

type Provider interface {
	// EnsureProfile профиль пользователя, при первом входе создается профиль по умолчанию
	EnsureProfile(ctx context.Context, identity profileapimodels.Identity) (dbmodels.Profile, error)
	GetProfile(ctx context.Context, id string) (*profileapimodels.ProfileView, error)
	UpdateOwn(ctx context.Context, userID string, data profileapimodels.OwnProfileData) (profileapimodels.ProfileView, error)
	SetProfilePicture(ctx context.Context, userID, url string) error
	Directory(ctx context.Context, filter profileapimodels.DirectoryFilter) ([]profileapimodels.ProfileView, error)
	Departments(ctx context.Context) ([]string, error)

	ListAll(ctx context.Context) ([]profileapimodels.ProfileView, error)
	AddEmployee(ctx context.Context, data profileapimodels.EmployeeData) (view profileapimodels.ProfileView, hMsg string, err error)
	EditEmployee(ctx context.Context, id string, data profileapimodels.EmployeeData) (view profileapimodels.ProfileView, hMsg string, err error)
	ToggleActive(ctx context.Context, id string) (view profileapimodels.ProfileView, hMsg string, err error)
}

var Instance Provider

type Config struct {
	AdminEmail   string
	FetchTimeout time.Duration
}

func NewHandler(client remote.Client, data dataservice.Provider, cfg Config) {
	Instance = NewInstance(profilestore.NewInstance(client), data, clockwork.NewRealClock(), cfg)
}

func NewInstance(store profilestore.Provider, data dataservice.Provider, clock clockwork.Clock, cfg Config) Provider {
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}
	return &impl{
		store:        store,
		data:         data,
		clock:        clock,
		adminEmail:   strings.TrimSpace(cfg.AdminEmail),
		fetchTimeout: cfg.FetchTimeout,
	}
}

type impl struct {
	store        profilestore.Provider
	data         dataservice.Provider
	clock        clockwork.Clock
	adminEmail   string
	fetchTimeout time.Duration
}

func (i impl) EnsureProfile(ctx context.Context, identity profileapimodels.Identity) (dbmodels.Profile, error) {
	if identity.ID == "" {
		return dbmodels.Profile{}, errors.New("не указан идентификатор пользователя")
	}
	ctx, cancel := context.WithTimeout(ctx, i.fetchTimeout)
	defer cancel()
	logger := log.
		WithField("user_id", identity.ID).
		WithField("email", identity.Email)

	rec, err := i.store.GetByID(ctx, identity.ID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения профиля")
		return dbmodels.Profile{}, err
	}
	if rec != nil {
		return *rec, nil
	}

	var result dbmodels.Profile
	success, err := lock.WithDelay(ctx, "profile-"+identity.ID, i.fetchTimeout, func() error {
		// профиль мог создать параллельный запрос
		existed, err := i.store.GetByID(ctx, identity.ID)
		if err != nil {
			return err
		}
		if existed == nil {
			if err = i.createDefault(ctx, identity); err != nil {
				return err
			}
			existed, err = i.store.GetByID(ctx, identity.ID)
			if err != nil {
				return err
			}
			if existed == nil {
				return remote.NewError("созданный профиль не найден", remote.CodeNoRows)
			}
		}
		result = *existed
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("ошибка создания профиля по умолчанию")
		return dbmodels.Profile{}, err
	}
	if !success {
		logger.Error("превышено время ожидания создания профиля")
		return dbmodels.Profile{}, remote.NewError("превышено время ожидания профиля", remote.CodeTimeout)
	}
	return result, nil
}

func (i impl) createDefault(ctx context.Context, identity profileapimodels.Identity) error {
	fullName := helpers.EmailLocalPart(identity.Email)
	if fullName == "" {
		fullName = models.DefaultFullName
	}
	role := models.EmployeeRole
	if i.adminEmail != "" && strings.EqualFold(identity.Email, i.adminEmail) {
		role = models.SuperAdminRole
	}
	rec := dbmodels.Profile{
		BaseModel:   dbmodels.BaseModel{ID: identity.ID},
		Email:       identity.Email,
		FullName:    fullName,
		Role:        role,
		Department:  models.DefaultDepartment,
		JobTitle:    models.DefaultJobTitle,
		JoiningDate: helpers.StartOfDay(i.clock.Now()),
		Location:    models.DefaultLocation,
		IsActive:    true,
	}
	if _, err := i.store.Create(ctx, rec); err != nil {
		if remote.IsUniqueViolation(err) {
			// профиль создан другим экземпляром сервиса
			log.WithField("user_id", identity.ID).Info("профиль уже создан, повторное чтение")
			return nil
		}
		return err
	}
	log.
		WithField("user_id", identity.ID).
		WithField("role", role).
		Info("создан профиль нового пользователя")
	i.data.InvalidateCache(dataservice.GlobalScope, "")
	return nil
}

func (i impl) GetProfile(ctx context.Context, id string) (*profileapimodels.ProfileView, error) {
	rec, err := i.store.GetByID(ctx, id)
	if err != nil || rec == nil {
		return nil, err
	}
	result := rec.ToModel()
	return &result, nil
}

func (i impl) UpdateOwn(ctx context.Context, userID string, data profileapimodels.OwnProfileData) (profileapimodels.ProfileView, error) {
	updMap := map[string]interface{}{
		"full_name": strings.TrimSpace(data.FullName),
		"phone":     helpers.EmptyToNil(data.Phone),
	}
	if strings.TrimSpace(data.Location) != "" {
		updMap["location"] = strings.TrimSpace(data.Location)
	}
	if data.ProfilePicture != nil {
		updMap["profile_picture"] = helpers.EmptyToNil(data.ProfilePicture)
	}
	return i.updateAndGet(ctx, userID, updMap)
}

func (i impl) SetProfilePicture(ctx context.Context, userID, url string) error {
	updMap := map[string]interface{}{
		"profile_picture": url,
	}
	_, err := i.updateAndGet(ctx, userID, updMap)
	return err
}

func (i impl) Directory(ctx context.Context, filter profileapimodels.DirectoryFilter) ([]profileapimodels.ProfileView, error) {
	list, err := i.data.GetEmployees(ctx)
	if err != nil {
		return nil, err
	}
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	result := make([]profileapimodels.ProfileView, 0, len(list))
	for _, rec := range list {
		if !matchValue(filter.Department, rec.Department) || !matchValue(filter.Location, rec.Location) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(rec.FullName), search) &&
			!strings.Contains(strings.ToLower(rec.Email), search) &&
			!strings.Contains(strings.ToLower(rec.JobTitle), search) {
			continue
		}
		result = append(result, rec.ToModel())
	}
	return result, nil
}

func (i impl) Departments(ctx context.Context) ([]string, error) {
	list, err := i.data.GetEmployees(ctx)
	if err != nil {
		return nil, err
	}
	unique := map[string]bool{}
	result := []string{}
	for _, rec := range list {
		if rec.Department == "" || unique[rec.Department] {
			continue
		}
		unique[rec.Department] = true
		result = append(result, rec.Department)
	}
	sort.Strings(result)
	return result, nil
}

func (i impl) ListAll(ctx context.Context) ([]profileapimodels.ProfileView, error) {
	list, err := i.store.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]profileapimodels.ProfileView, 0, len(list))
	for _, rec := range list {
		result = append(result, rec.ToModel())
	}
	return result, nil
}

func (i impl) AddEmployee(ctx context.Context, data profileapimodels.EmployeeData) (profileapimodels.ProfileView, string, error) {
	role, hMsg := parseRole(data.Role)
	if hMsg != "" {
		return profileapimodels.ProfileView{}, hMsg, nil
	}
	existed, err := i.store.GetByEmail(ctx, strings.TrimSpace(data.Email))
	if err != nil {
		return profileapimodels.ProfileView{}, "", err
	}
	if existed != nil {
		return profileapimodels.ProfileView{}, "сотрудник с таким емайл уже существует", nil
	}
	joiningDate := helpers.StartOfDay(i.clock.Now())
	if data.JoiningDate != "" {
		joiningDate, err = helpers.ParseDate(data.JoiningDate)
		if err != nil {
			return profileapimodels.ProfileView{}, err.Error(), nil
		}
	}
	rec := dbmodels.Profile{
		Email:       strings.TrimSpace(data.Email),
		FullName:    strings.TrimSpace(data.FullName),
		Role:        role,
		Department:  strings.TrimSpace(data.Department),
		JobTitle:    defaultString(data.JobTitle, models.DefaultJobTitle),
		JoiningDate: joiningDate,
		Location:    defaultString(data.Location, models.DefaultLocation),
		Phone:       helpers.EmptyToNil(data.Phone),
		IsActive:    true,
	}
	id, err := i.store.Create(ctx, rec)
	if err != nil {
		return profileapimodels.ProfileView{}, "", err
	}
	i.data.InvalidateCache(dataservice.GlobalScope, "")
	created, err := i.store.GetByID(ctx, id)
	if err != nil {
		return profileapimodels.ProfileView{}, "", err
	}
	if created == nil {
		return profileapimodels.ProfileView{}, "", remote.NewError("созданный профиль не найден", remote.CodeNoRows)
	}
	return created.ToModel(), "", nil
}

func (i impl) EditEmployee(ctx context.Context, id string, data profileapimodels.EmployeeData) (profileapimodels.ProfileView, string, error) {
	role, hMsg := parseRole(data.Role)
	if hMsg != "" {
		return profileapimodels.ProfileView{}, hMsg, nil
	}
	updMap := map[string]interface{}{
		"full_name":  strings.TrimSpace(data.FullName),
		"role":       role,
		"department": strings.TrimSpace(data.Department),
		"job_title":  defaultString(data.JobTitle, models.DefaultJobTitle),
		"location":   defaultString(data.Location, models.DefaultLocation),
		"phone":      helpers.EmptyToNil(data.Phone),
	}
	if data.JoiningDate != "" {
		joiningDate, err := helpers.ParseDate(data.JoiningDate)
		if err != nil {
			return profileapimodels.ProfileView{}, err.Error(), nil
		}
		updMap["joining_date"] = joiningDate
	}
	view, err := i.updateAndGet(ctx, id, updMap)
	if err != nil {
		if remote.IsNotFound(err) {
			return profileapimodels.ProfileView{}, "сотрудник не найден", nil
		}
		return profileapimodels.ProfileView{}, "", err
	}
	return view, "", nil
}

func (i impl) ToggleActive(ctx context.Context, id string) (profileapimodels.ProfileView, string, error) {
	rec, err := i.store.GetByID(ctx, id)
	if err != nil {
		return profileapimodels.ProfileView{}, "", err
	}
	if rec == nil {
		return profileapimodels.ProfileView{}, "сотрудник не найден", nil
	}
	updMap := map[string]interface{}{
		"is_active": !rec.IsActive,
	}
	view, err := i.updateAndGet(ctx, id, updMap)
	if err != nil {
		return profileapimodels.ProfileView{}, "", err
	}
	log.
		WithField("user_id", id).
		WithField("is_active", view.IsActive).
		Info("изменен статус сотрудника")
	return view, "", nil
}

// updateAndGet изменения профиля затрагивают справочник сотрудников и статистику пользователя
func (i impl) updateAndGet(ctx context.Context, id string, updMap map[string]interface{}) (profileapimodels.ProfileView, error) {
	if err := i.store.Update(ctx, id, updMap); err != nil {
		return profileapimodels.ProfileView{}, err
	}
	i.data.InvalidateCache(dataservice.GlobalScope, "")
	i.data.InvalidateCache(dataservice.UserScope, id)
	rec, err := i.store.GetByID(ctx, id)
	if err != nil {
		return profileapimodels.ProfileView{}, err
	}
	if rec == nil {
		return profileapimodels.ProfileView{}, remote.NewError("профиль не найден", remote.CodeNoRows)
	}
	return rec.ToModel(), nil
}

func parseRole(value string) (models.UserRole, string) {
	if value == "" {
		return models.EmployeeRole, ""
	}
	role := models.UserRole(value)
	if !role.IsValid() {
		return "", "некорректная роль"
	}
	return role, ""
}

// matchValue пустое значение фильтра или "all" - без ограничения
func matchValue(filterValue, value string) bool {
	if filterValue == "" || filterValue == "all" {
		return true
	}
	return filterValue == value
}

func defaultString(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}
