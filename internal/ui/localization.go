package ui

import (
	"strings"

	"fyne.io/fyne/v2/lang"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Language codes
const (
	LangSystem  = "system"
	LangEnglish = "en"
	LangRussian = "ru"
	LangPortug  = "pt"
)

// Text keys for localization
const (
	KeyHeading            = "heading"
	KeyDownload           = "download"
	KeyCancel             = "cancel"
	KeyOpenFolder         = "open_folder"
	KeySettings           = "settings"
	KeyFile               = "file"
	KeyEdit               = "edit"
	KeyCut                = "cut"
	KeyCopy               = "copy"
	KeyPaste              = "paste"
	KeyQuit               = "quit"
	KeyLanguage           = "language"
	KeyQuality            = "quality"
	KeyVideoFormat        = "video_format"
	KeyAudioFormat        = "audio_format"
	KeyAudioOnly          = "audio_only"
	KeyEnterURL           = "enter_url"
	KeyAttempting         = "attempting"
	KeyAttemptingPlaylist = "attempting_playlist"
	KeySucceeded          = "succeeded"
	KeyFailed             = "failed"
	KeyTerminated         = "terminated"
	KeyStoppingDownload   = "stopping_download"
	KeyPleaseEnterURL     = "please_enter_url"
	KeyInvalidURL         = "invalid_url"
	KeyErrorOpeningFolder = "error_opening_folder"
	KeyDownloadDirectory  = "download_directory"
	KeyYTDLPPath          = "ytdlp_path"
	KeyYTDLPPathHint      = "ytdlp_path_hint"
	KeyAutoInstall        = "auto_install"
	KeyCheckYTDLP         = "check_ytdlp"
	KeyCheckingYTDLP      = "checking_ytdlp"
	KeyYTDLPVersion       = "ytdlp_version"
	KeyYTDLPMissing       = "ytdlp_missing"
	KeySave               = "save"
	KeyBrowse             = "browse"
	KeySettingsSaved      = "settings_saved"
	KeyDownloadCompleted  = "download_completed"
	KeySystemDefault      = "system_default"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: LangEnglish,
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. "system" follows the OS locale and
// falls back to English when it is not translated.
func (l *Localization) SetLanguage(code string) {
	if code == LangSystem {
		code = systemLanguage()
	}

	if _, exists := l.texts[code]; exists {
		l.currentLanguage = code
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts[LangEnglish]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns the translated languages in menu order
func (l *Localization) GetAvailableLanguages() []LanguageOption {
	return []LanguageOption{
		{Code: LangEnglish, Name: "English"},
		{Code: LangRussian, Name: "Русский"},
		{Code: LangPortug, Name: "Português"},
	}
}

// LanguageOption pairs a language code with its native name
type LanguageOption struct {
	Code string
	Name string
}

func systemLanguage() string {
	locale := lang.SystemLocale().LanguageString()
	code, _, _ := strings.Cut(strings.ToLower(locale), "-")
	return code
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts[LangEnglish] = map[string]string{
		KeyHeading:            "YouTube Downloader",
		KeyDownload:           "Download",
		KeyCancel:             "Cancel",
		KeyOpenFolder:         "Open Download Folder",
		KeySettings:           "Settings",
		KeyFile:               "File",
		KeyEdit:               "Edit",
		KeyCut:                "Cut",
		KeyCopy:               "Copy",
		KeyPaste:              "Paste",
		KeyQuit:               "Quit",
		KeyLanguage:           "Language",
		KeyQuality:            "Quality",
		KeyVideoFormat:        "Video format",
		KeyAudioFormat:        "Audio format",
		KeyAudioOnly:          "Audio only",
		KeyEnterURL:           "Enter video url",
		KeyAttempting:         "Attempting to download %s...",
		KeyAttemptingPlaylist: "Attempting to download playlist %s (%d videos)...",
		KeySucceeded:          "Video downloaded successfully.",
		KeyFailed:             "There was an issue while downloading the video.",
		KeyTerminated:         "Download was terminated.",
		KeyStoppingDownload:   "Stopping download...",
		KeyPleaseEnterURL:     "Please enter a URL",
		KeyInvalidURL:         "Invalid URL",
		KeyErrorOpeningFolder: "Error opening folder",
		KeyDownloadDirectory:  "Download Directory",
		KeyYTDLPPath:          "yt-dlp Executable",
		KeyYTDLPPathHint:      "Leave empty to use yt-dlp from PATH",
		KeyAutoInstall:        "Download yt-dlp automatically if missing",
		KeyCheckYTDLP:         "Check",
		KeyCheckingYTDLP:      "Checking yt-dlp...",
		KeyYTDLPVersion:       "yt-dlp %s at %s",
		KeyYTDLPMissing:       "yt-dlp not available",
		KeySave:               "Save",
		KeyBrowse:             "Browse",
		KeySettingsSaved:      "Settings saved successfully!",
		KeyDownloadCompleted:  "Download completed",
		KeySystemDefault:      "System Default",
	}

	// Russian texts
	l.texts[LangRussian] = map[string]string{
		KeyHeading:            "Загрузчик YouTube",
		KeyDownload:           "Скачать",
		KeyCancel:             "Отмена",
		KeyOpenFolder:         "Открыть папку загрузки",
		KeySettings:           "Настройки",
		KeyFile:               "Файл",
		KeyEdit:               "Правка",
		KeyCut:                "Вырезать",
		KeyCopy:               "Копировать",
		KeyPaste:              "Вставить",
		KeyQuit:               "Выход",
		KeyLanguage:           "Язык",
		KeyQuality:            "Качество",
		KeyVideoFormat:        "Формат видео",
		KeyAudioFormat:        "Формат аудио",
		KeyAudioOnly:          "Только аудио",
		KeyEnterURL:           "Введите ссылку на видео",
		KeyAttempting:         "Пытаемся скачать %s...",
		KeyAttemptingPlaylist: "Пытаемся скачать плейлист %s (видео: %d)...",
		KeySucceeded:          "Видео успешно скачано.",
		KeyFailed:             "При скачивании видео возникла проблема.",
		KeyTerminated:         "Загрузка была прервана.",
		KeyStoppingDownload:   "Остановка загрузки...",
		KeyPleaseEnterURL:     "Пожалуйста, введите URL",
		KeyInvalidURL:         "Неверный URL",
		KeyErrorOpeningFolder: "Ошибка открытия папки",
		KeyDownloadDirectory:  "Папка загрузки",
		KeyYTDLPPath:          "Исполняемый файл yt-dlp",
		KeyYTDLPPathHint:      "Оставьте пустым, чтобы искать yt-dlp в PATH",
		KeyAutoInstall:        "Скачать yt-dlp автоматически, если не найден",
		KeyCheckYTDLP:         "Проверить",
		KeyCheckingYTDLP:      "Проверка yt-dlp...",
		KeyYTDLPVersion:       "yt-dlp %s в %s",
		KeyYTDLPMissing:       "yt-dlp недоступен",
		KeySave:               "Сохранить",
		KeyBrowse:             "Обзор",
		KeySettingsSaved:      "Настройки успешно сохранены!",
		KeyDownloadCompleted:  "Загрузка завершена",
		KeySystemDefault:      "Системный",
	}

	// Portuguese texts
	l.texts[LangPortug] = map[string]string{
		KeyHeading:            "Baixador do YouTube",
		KeyDownload:           "Baixar",
		KeyCancel:             "Cancelar",
		KeyOpenFolder:         "Abrir pasta de downloads",
		KeySettings:           "Configurações",
		KeyFile:               "Arquivo",
		KeyEdit:               "Editar",
		KeyCut:                "Recortar",
		KeyCopy:               "Copiar",
		KeyPaste:              "Colar",
		KeyQuit:               "Sair",
		KeyLanguage:           "Idioma",
		KeyQuality:            "Qualidade",
		KeyVideoFormat:        "Formato de vídeo",
		KeyAudioFormat:        "Formato de áudio",
		KeyAudioOnly:          "Somente áudio",
		KeyEnterURL:           "Digite a URL do vídeo",
		KeyAttempting:         "Tentando baixar %s...",
		KeyAttemptingPlaylist: "Tentando baixar a playlist %s (%d vídeos)...",
		KeySucceeded:          "Vídeo baixado com sucesso.",
		KeyFailed:             "Houve um problema ao baixar o vídeo.",
		KeyTerminated:         "O download foi interrompido.",
		KeyStoppingDownload:   "Parando download...",
		KeyPleaseEnterURL:     "Por favor, digite uma URL",
		KeyInvalidURL:         "URL inválida",
		KeyErrorOpeningFolder: "Erro ao abrir pasta",
		KeyDownloadDirectory:  "Diretório de Download",
		KeyYTDLPPath:          "Executável do yt-dlp",
		KeyYTDLPPathHint:      "Deixe vazio para usar o yt-dlp do PATH",
		KeyAutoInstall:        "Baixar o yt-dlp automaticamente se não existir",
		KeyCheckYTDLP:         "Verificar",
		KeyCheckingYTDLP:      "Verificando yt-dlp...",
		KeyYTDLPVersion:       "yt-dlp %s em %s",
		KeyYTDLPMissing:       "yt-dlp indisponível",
		KeySave:               "Salvar",
		KeyBrowse:             "Navegar",
		KeySettingsSaved:      "Configurações salvas com sucesso!",
		KeyDownloadCompleted:  "Download concluído",
		KeySystemDefault:      "Padrão do sistema",
	}
}
