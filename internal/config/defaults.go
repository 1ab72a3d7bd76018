package config

const (
	defaultOutputDir           = "~/.local/share/certlink/output"
	defaultLogDir              = "~/.local/share/certlink/logs"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultNameColumn          = "ALUNOS"
	defaultCategoryColumn      = "CURSO"
	defaultDayWindow           = 5
	defaultBatchSize           = 500
	defaultNameLabel           = "Nome completo"
	defaultCategoryLabel       = "Para qual curso você quer se inscrever?"
	defaultTimestampLabel      = "Carimbo de data/hora"
	defaultSchoolLabel         = "Escreva o nome da Unidade de Ensino que você frequenta atualmente:"
	defaultPhoneLabel          = "Telefone celular do ALUNO (que use WHATSAPP)"
	defaultGradeLabel          = "Qual nível ou série escolar você está frequentando atualmente?"
	defaultEthnicityLabel      = "Cor da pele / Raça / Etnia"
	defaultBirthDayLabel       = "Data de Nascimento (DIA)"
	defaultBirthMonthLabel     = "Data de Nascimento (MÊS)"
	defaultBirthYearLabel      = "Data de Nascimento (ANO)"
	defaultPCGamerCanonical    = "Montagem e Configuração de Computadores de Alto Desempenho (PC GAMER)"
	defaultPCGamerCertificate  = "Montagem e configuração de computadores de alto desempenho - PC Gamer"
	defaultRoboticsCertificate = "Robótica, Programação"
)

// Default returns a Config populated with repository defaults. The category
// tables cover the current course catalog; deployments with a different
// catalog override them in the config file.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Attendance: Attendance{
			NameColumn:     defaultNameColumn,
			CategoryColumn: defaultCategoryColumn,
			DayWindow:      defaultDayWindow,
		},
		Enrollment: Enrollment{
			NameLabel:      defaultNameLabel,
			CategoryLabel:  defaultCategoryLabel,
			TimestampLabel: defaultTimestampLabel,
		},
		Categories: Categories{
			KeywordGroups: [][]string{
				{"pcgamer"},
				{"robotica"},
				{"celular"},
				{"dev.jogos", "desenvolvimentodejogos"},
				{"m.celular", "manutencaocelular", "manutencao"},
			},
			Aliases: map[string]string{
				"pc gamer":                defaultPCGamerCanonical,
				"robótica":                "Robótica",
				"robótica, programação":   "Robótica",
				"manutenção de celulares": "Manutenção de Celulares",
				"m. celular":              "Manutenção de Celulares",
				"dev. jogos":              "Desenvolvimento de Jogos",
			},
			CertificateNames: map[string]string{
				"pc gamer":                defaultPCGamerCertificate,
				"m. celular":              "Manutenção de Celulares",
				"manutenção de celulares": "Manutenção de Celulares",
				"robótica":                defaultRoboticsCertificate,
				"robótica, programação":   defaultRoboticsCertificate,
				"dev. jogos":              "Desenvolvimento de Jogos",
			},
		},
		Matching: Matching{
			Stopwords: []string{
				"de", "da", "do", "dos", "das", "e", "a", "o", "as", "os", "para", "por", "com",
			},
			BatchSize: defaultBatchSize,
		},
		Output: Output{
			Fields:      DefaultOutputFields(),
			PerCategory: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

// DefaultOutputFields returns the fixed certificate column order downstream
// consumers rely on.
func DefaultOutputFields() []OutputField {
	return []OutputField{
		{Key: "DATA_ADESAO", Source: defaultTimestampLabel},
		{Key: "ESTADO", Source: "Estado", Transform: "upper"},
		{Key: "ESCOLA", Source: defaultSchoolLabel},
		{Key: "NOME", Source: defaultNameLabel, Transform: "name"},
		{Key: "CURSO"},
		{Key: "TELEFONE", Source: defaultPhoneLabel},
		{Key: "EMAIL", Source: "E-mail"},
		{Key: "CPF", Source: "CPF"},
		{Key: "DIA", Source: defaultBirthDayLabel, Transform: "int"},
		{Key: "MES", Source: defaultBirthMonthLabel},
		{Key: "ANO", Source: defaultBirthYearLabel, Transform: "int"},
		{Key: "IDADE", Source: "Idade", Transform: "int"},
		{Key: "COR_PELE", Source: defaultEthnicityLabel},
		{Key: "SEXO", Source: "Sexo"},
		{Key: "SERIE_ESCOLAR", Source: defaultGradeLabel},
		{Key: "DATA_CONCLUSAO"},
	}
}
