package analytics

// LoadRequest - загрузка набора данных в сессию
type LoadRequest struct {
	Source string `json:"source"` // "file" - CSV лог, "ledger" - леджер из БД
	Path   string `json:"path"`   // Путь к файлу для source = "file"
}

type LoadResponse struct {
	Rows int `json:"rows"` // Сколько строк загружено
}

// FilterRequest - фильтр сессии анализа
type FilterRequest struct {
	From    string  `json:"from"`     // Начало диапазона YYYY-MM-DD, пусто - без ограничения
	To      string  `json:"to"`       // Конец диапазона YYYY-MM-DD, пусто - без ограничения
	GameIDs []int64 `json:"game_ids"` // Выбранные игры, null - все игры
}

type FilterResponse struct {
	From    string  `json:"from"`
	To      string  `json:"to"`
	GameIDs []int64 `json:"game_ids"`
	AllGame []int64 `json:"available_game_ids"` // Все игры набора для списка выбора
}

// KPIResponse - глобальные показатели
type KPIResponse struct {
	Turnover     float64          `json:"turnover"`       // Общий оборот
	TotalPayout  float64          `json:"total_payout"`   // Общие выплаты
	GGR          float64          `json:"ggr"`            // Оборот - выплаты
	RTP          float64          `json:"rtp"`            // Возврат игроку, %
	SpinCount    int              `json:"spin_count"`     // Количество ставок
	AvgBet       float64          `json:"avg_bet"`        // Средняя ставка
	HitRate      float64          `json:"hit_rate"`       // Доля выигрышных спинов, %
	TotalUsers   int              `json:"total_users"`    // Игроков в выборке
	SpinsPerUser float64          `json:"spins_per_user"` // Ставок на игрока
	Thresholds   []ThresholdCount `json:"thresholds"`     // Распределение по накопленным ставкам
}

type ThresholdCount struct {
	Threshold float64 `json:"threshold"`
	Users     int     `json:"users"`
}

// CohortResponse - активность и удержание
type CohortResponse struct {
	DAU          []DatePoint      `json:"dau"`
	AvgDAU       float64          `json:"avg_dau"`
	NewUsers     []DatePoint      `json:"new_users"`
	AvgNewUsers  float64          `json:"avg_new_users"`
	Retention    []RetentionPoint `json:"retention"`
	AvgRetention float64          `json:"avg_retention"`
}

type DatePoint struct {
	Date  string `json:"date"`
	Users int    `json:"users"`
}

// RetentionPoint - удержание до следующей активной даты выборки
// (не обязательно следующего календарного дня)
type RetentionPoint struct {
	Date string  `json:"date"`
	Rate float64 `json:"rate"`
}

// GameStat - показатели одной игры
type GameStat struct {
	GameID        int64   `json:"gid"`
	Turnover      float64 `json:"turnover"`
	Payout        float64 `json:"payout"`
	GGR           float64 `json:"ggr"`
	RTP           float64 `json:"rtp"`
	AvgBet        float64 `json:"avg_bet"`        // 1, если в выборке игры нет ставок
	Volatility    float64 `json:"volatility"`     // Стандартное отклонение сумм
	HitRate       float64 `json:"hit_rate"`       // %
	WinnerPct     float64 `json:"winner_pct"`     // Доля игроков в плюсе, %
	TurnoverShare float64 `json:"turnover_share"` // Доля игры в обороте, %
	PayoutShare   float64 `json:"payout_share"`   // Доля игры в выплатах, %

	Bands         WinBands `json:"bands"`          // Количество выигрышей по кратности
	BandsPct      WinBands `json:"bands_pct"`      // Та же структура в процентах
	AvgMultiplier float64  `json:"avg_multiplier"` // Средняя кратность выигрыша
}

// WinBands - выигрыши по кратности к средней ставке игры
type WinBands struct {
	Small float64 `json:"small"` // (0, 5]
	Big   float64 `json:"big"`   // (5, 20]
	Mega  float64 `json:"mega"`  // (20, 50]
	Super float64 `json:"super"` // (50, +inf)
}

// UserOption - строка игрока для списка выбора
type UserOption struct {
	UserID int64   `json:"user_id"`
	RTP    float64 `json:"rtp"`
	Spins  int     `json:"spins"`
}

// UserResponse - показатели и теги одного игрока
type UserResponse struct {
	UserID      int64    `json:"user_id"`
	TotalBet    float64  `json:"total_bet"`
	TotalPayout float64  `json:"total_payout"`
	PnL         float64  `json:"pnl"`
	SpinCount   int      `json:"spin_count"`
	RTP         float64  `json:"rtp"`
	MaxWin      float64  `json:"max_win"`
	Tags        []string `json:"tags"` // Сначала тег размера, затем тег результата

	GGRSharePct        float64 `json:"ggr_share_pct"`        // Вклад в GGR, %
	GGRShareApplicable bool    `json:"ggr_share_applicable"` // false при нулевом GGR
}

// UserInsightResponse - подробная сводка по игроку
type UserInsightResponse struct {
	User      UserResponse   `json:"user"`
	Journey   []JourneyPoint `json:"journey"`
	PoolTrend []PoolPoint    `json:"pool_trend"` // Пусто без поля pool в данных
}

type JourneyPoint struct {
	Seq      int     `json:"seq"` // Порядковый номер транзакции игрока
	At       string  `json:"at"`
	GameID   int64   `json:"gid"`
	Amount   float64 `json:"amount"`
	CumPnL   float64 `json:"cum_pnl"`
	Switched bool    `json:"switched"` // Смена игры на этой транзакции
}

type PoolPoint struct {
	Seq  int    `json:"seq"`
	At   string `json:"at"`
	Pool string `json:"pool"` // Десятичное значение пула строкой
}

// TransactionRow - строка таблицы сырых данных
type TransactionRow struct {
	ID         string  `json:"id"`
	CreateDate string  `json:"create_date"`
	UserID     int64   `json:"user_id"`
	GameID     int64   `json:"gid"`
	Amount     float64 `json:"amount"`
	Type       string  `json:"type"`           // Bet / Win, пусто для нулевой суммы
	Pool       string  `json:"pool,omitempty"` // Пусто, если пула нет
}

// CheckpointsResponse - временная сетка воспроизведения
type CheckpointsResponse struct {
	Checkpoints []Checkpoint `json:"checkpoints"`
	Index       int          `json:"index"`   // Текущий индекс сессии
	Playing     bool         `json:"playing"` // Идет ли воспроизведение
}

type Checkpoint struct {
	Index int    `json:"index"`
	At    string `json:"at"`
}

// SnapshotResponse - состояние игроков на момент среза
type SnapshotResponse struct {
	Index   int           `json:"index"` // -1 для среза на произвольное время
	At      string        `json:"at"`
	Players []PlayerPoint `json:"players"`
	Bounds  AxisBounds    `json:"bounds"` // Одинаковы для всех срезов сессии
}

type PlayerPoint struct {
	UserID int64   `json:"user_id"`
	CumBet float64 `json:"cum_bet"`
	CumPnL float64 `json:"cum_pnl"`
	Status string  `json:"status"` // Winner / Loser
}

type AxisBounds struct {
	XMax float64 `json:"x_max"`
	YMin float64 `json:"y_min"`
	YMax float64 `json:"y_max"`
}

// PlayRequest - запуск воспроизведения
type PlayRequest struct {
	Speed string `json:"speed"` // slow / normal / fast
}

// SeekRequest - прямая установка индекса
type SeekRequest struct {
	Index int `json:"index"`
}

// StateResponse - состояние сессии воспроизведения
type StateResponse struct {
	Index   int  `json:"index"`
	Playing bool `json:"playing"`
}
