package i18n

var catalog = map[Locale]map[Key]string{
	LocaleEN: {
		KeySelectLanguage: "🌍 Please select your language:",
		KeyLanguageSet:    "✅ Language set: {language}",
		KeyBotIntro: "🤖 Crypto EMA20 Breakout Bot\n\n" +
			"📊 Tracking {pairs} USDT pairs on 4H and 1D\n" +
			"🔍 EMA20 breakout, resistance break, volume surge, momentum candle\n" +
			"⏰ Scanning every {interval}\n\n" +
			"⚠️ This is not financial advice!",
		KeyStatusReport: "📊 Bot Status Report\n\n" +
			"✅ Monitoring: {pairs} crypto pairs\n" +
			"📈 Signals sent today: {signals_count}\n" +
			"🔄 Scanning every {interval}",
		KeyAdminOnly: "❌ Admin only command",
		KeyFreeTierWelcome: "🎉 Welcome to Crypto EMA20 Breakout Bot!\n\n" +
			"🆓 You are one of the first {capacity} users: free access to all signals, permanently.\n\n" +
			"📚 Type /help for the feature guide",
		KeyFreeTierFull: "🎉 Welcome to Crypto EMA20 Breakout Bot!\n\n" +
			"🆓 The free tier is full ({capacity}/{capacity} users).\n" +
			"💰 Premium plans start from $9.99/week.\n\n" +
			"Use /subscribe to get premium access!",
		KeyNotSubscribed: "🔒 Premium Feature\n\n" +
			"Free access is available for the first {capacity} users, then a subscription is required.\n" +
			"Current users: {user_count}/{capacity}\n\n" +
			"Use /subscribe to unlock all trading signals!",
		KeySubscriptionMenu: "💎 Choose Your Premium Plan:",
		KeyPaymentSubmitted: "✅ Payment verification request submitted!\n\n" +
			"⏳ You will receive confirmation within 24 hours.",
		KeyPaymentSuccess: "✅ Payment Successful!\n\nWelcome to Premium! Full access for {days} days.",
		KeyPaidUsage: "📝 Payment Verification Usage:\n\n" +
			"/paid <method> <transaction_hash>\n\n" +
			"Example:\n/paid USDT TRX123456789",
		KeyHelpFree: "📚 Crypto EMA20 Breakout Bot\n\n" +
			"🆓 Free access for the first {capacity} users!\n\n" +
			"🤖 Commands:\n" +
			"/start - Welcome and language selection\n" +
			"/status - Bot status and recent signals\n" +
			"/coins - Monitored pairs\n" +
			"/help - This guide",
		KeyHelpPremium: "📚 Crypto EMA20 Breakout Bot\n\n" +
			"💎 Premium subscription required.\n\n" +
			"🤖 Commands:\n" +
			"/start - Welcome and language selection\n" +
			"/status - Bot status and recent signals\n" +
			"/subscribe - Premium plans\n" +
			"/paid <method> <tx_hash> - Payment verification\n" +
			"/help - This guide",
		KeyCoinList: "💰 Monitored Pairs ({pairs})\n\n{coins}\n\n" +
			"⚡ A signal fires when all breakout criteria hold on 4H or 1D\n" +
			"🔄 Scanning every {interval}",
		KeyCommandMenu:         "🤖 Bot Commands",
		KeyTierFree:            "🆓 Tier: Free (permanent)",
		KeyTierPaid:            "💎 Tier: Premium, {days} days left",
		KeyTierAdmin:           "👑 Tier: Admin",
		KeyRecentSignals:       "📈 Recent signals:",
		KeyNoRecentSignals:     "📭 No signals yet",
		KeyUnknownCommand:      "❓ Unknown command. Type /help",
		KeySubscriptionExpired: "⏰ Your premium subscription has expired. Use /subscribe to renew.",
		KeyButtonStatus:        "📊 Status",
		KeyButtonCoins:         "💰 Coins",
		KeyButtonHelp:          "📚 Help",
		KeyButtonLanguage:      "🌍 Language",
		KeyButtonSubscribe:     "💎 Subscribe",
		KeyButtonAdmin:         "👑 Admin",
		KeyButtonBack:          "🔙 Back to Menu",
	},
	LocaleES: {
		KeySelectLanguage: "🌍 Por favor selecciona tu idioma:",
		KeyLanguageSet:    "✅ Idioma configurado: {language}",
		KeyBotIntro: "🤖 Bot de Rupturas EMA20\n\n" +
			"📊 Siguiendo {pairs} pares USDT en 4H y 1D\n" +
			"🔍 Ruptura EMA20, ruptura de resistencia, volumen y vela de impulso\n" +
			"⏰ Escaneando cada {interval}\n\n" +
			"⚠️ ¡Esto no es asesoramiento financiero!",
		KeyStatusReport: "📊 Estado del Bot\n\n" +
			"✅ Monitoreando: {pairs} pares\n" +
			"📈 Señales enviadas hoy: {signals_count}\n" +
			"🔄 Escaneando cada {interval}",
		KeyAdminOnly: "❌ Comando solo para administradores",
		KeyFreeTierWelcome: "🎉 ¡Bienvenido a Crypto EMA20 Breakout Bot!\n\n" +
			"🆓 Eres uno de los primeros {capacity} usuarios: acceso gratuito y permanente a todas las señales.\n\n" +
			"📚 Escribe /help para ver la guía",
		KeyFreeTierFull: "🎉 ¡Bienvenido a Crypto EMA20 Breakout Bot!\n\n" +
			"🆓 El nivel gratuito está lleno ({capacity}/{capacity} usuarios).\n" +
			"💰 Planes premium desde $9.99/semana.\n\n" +
			"¡Usa /subscribe para obtener acceso premium!",
		KeyNotSubscribed: "🔒 Función Premium\n\n" +
			"Acceso gratuito para los primeros {capacity} usuarios, después se requiere suscripción.\n" +
			"Usuarios actuales: {user_count}/{capacity}\n\n" +
			"¡Usa /subscribe para desbloquear todas las señales!",
		KeySubscriptionMenu: "💎 Elige tu plan premium:",
		KeyPaymentSubmitted: "✅ ¡Solicitud de verificación de pago enviada!\n\n" +
			"⏳ Recibirás la confirmación en 24 horas.",
		KeyPaymentSuccess: "✅ ¡Pago exitoso!\n\n¡Bienvenido a Premium! Acceso completo durante {days} días.",
		KeyPaidUsage: "📝 Uso de verificación de pago:\n\n" +
			"/paid <método> <hash_transacción>\n\n" +
			"Ejemplo:\n/paid USDT TRX123456789",
		KeyHelpFree: "📚 Crypto EMA20 Breakout Bot\n\n" +
			"🆓 ¡Acceso gratuito para los primeros {capacity} usuarios!\n\n" +
			"🤖 Comandos:\n" +
			"/start - Bienvenida y selección de idioma\n" +
			"/status - Estado del bot y señales recientes\n" +
			"/coins - Pares monitoreados\n" +
			"/help - Esta guía",
		KeyHelpPremium: "📚 Crypto EMA20 Breakout Bot\n\n" +
			"💎 Se requiere suscripción premium.\n\n" +
			"🤖 Comandos:\n" +
			"/start - Bienvenida y selección de idioma\n" +
			"/status - Estado del bot y señales recientes\n" +
			"/subscribe - Planes premium\n" +
			"/paid <método> <hash> - Verificación de pago\n" +
			"/help - Esta guía",
		KeyCoinList: "💰 Pares monitoreados ({pairs})\n\n{coins}\n\n" +
			"⚡ La señal se activa cuando se cumplen todos los criterios en 4H o 1D\n" +
			"🔄 Escaneando cada {interval}",
		KeyCommandMenu:         "🤖 Comandos del bot",
		KeyTierFree:            "🆓 Nivel: Gratis (permanente)",
		KeyTierPaid:            "💎 Nivel: Premium, quedan {days} días",
		KeyTierAdmin:           "👑 Nivel: Administrador",
		KeyRecentSignals:       "📈 Señales recientes:",
		KeyNoRecentSignals:     "📭 Aún no hay señales",
		KeyUnknownCommand:      "❓ Comando desconocido. Escribe /help",
		KeySubscriptionExpired: "⏰ Tu suscripción premium ha expirado. Usa /subscribe para renovarla.",
		KeyButtonStatus:        "📊 Estado",
		KeyButtonCoins:         "💰 Monedas",
		KeyButtonHelp:          "📚 Ayuda",
		KeyButtonLanguage:      "🌍 Idioma",
		KeyButtonSubscribe:     "💎 Suscribirse",
		KeyButtonAdmin:         "👑 Admin",
		KeyButtonBack:          "🔙 Al Menú",
	},
	LocaleFR: {
		KeySelectLanguage: "🌍 Veuillez choisir votre langue :",
		KeyLanguageSet:    "✅ Langue définie : {language}",
		KeyBotIntro: "🤖 Bot de cassures EMA20\n\n" +
			"📊 Suivi de {pairs} paires USDT en 4H et 1D\n" +
			"🔍 Cassure EMA20, cassure de résistance, volume et bougie de momentum\n" +
			"⏰ Analyse toutes les {interval}\n\n" +
			"⚠️ Ceci n'est pas un conseil financier !",
		KeyStatusReport: "📊 État du bot\n\n" +
			"✅ Surveillance : {pairs} paires\n" +
			"📈 Signaux envoyés aujourd'hui : {signals_count}\n" +
			"🔄 Analyse toutes les {interval}",
		KeyAdminOnly: "❌ Commande réservée aux administrateurs",
		KeyFreeTierWelcome: "🎉 Bienvenue sur Crypto EMA20 Breakout Bot !\n\n" +
			"🆓 Vous faites partie des {capacity} premiers utilisateurs : accès gratuit et permanent à tous les signaux.\n\n" +
			"📚 Tapez /help pour le guide",
		KeyFreeTierFull: "🎉 Bienvenue sur Crypto EMA20 Breakout Bot !\n\n" +
			"🆓 L'offre gratuite est complète ({capacity}/{capacity} utilisateurs).\n" +
			"💰 Offres premium à partir de 9,99 $/semaine.\n\n" +
			"Utilisez /subscribe pour l'accès premium !",
		KeyNotSubscribed: "🔒 Fonction premium\n\n" +
			"Accès gratuit pour les {capacity} premiers utilisateurs, ensuite un abonnement est requis.\n" +
			"Utilisateurs actuels : {user_count}/{capacity}\n\n" +
			"Utilisez /subscribe pour débloquer tous les signaux !",
		KeySubscriptionMenu: "💎 Choisissez votre offre premium :",
		KeyPaymentSubmitted: "✅ Demande de vérification du paiement envoyée !\n\n" +
			"⏳ Vous recevrez une confirmation sous 24 heures.",
		KeyPaymentSuccess: "✅ Paiement réussi !\n\nBienvenue en Premium ! Accès complet pendant {days} jours.",
		KeyPaidUsage: "📝 Vérification du paiement :\n\n" +
			"/paid <méthode> <hash_transaction>\n\n" +
			"Exemple :\n/paid USDT TRX123456789",
		KeyHelpFree: "📚 Crypto EMA20 Breakout Bot\n\n" +
			"🆓 Accès gratuit pour les {capacity} premiers utilisateurs !\n\n" +
			"🤖 Commandes :\n" +
			"/start - Accueil et choix de la langue\n" +
			"/status - État du bot et signaux récents\n" +
			"/coins - Paires surveillées\n" +
			"/help - Ce guide",
		KeyHelpPremium: "📚 Crypto EMA20 Breakout Bot\n\n" +
			"💎 Abonnement premium requis.\n\n" +
			"🤖 Commandes :\n" +
			"/start - Accueil et choix de la langue\n" +
			"/status - État du bot et signaux récents\n" +
			"/subscribe - Offres premium\n" +
			"/paid <méthode> <hash> - Vérification du paiement\n" +
			"/help - Ce guide",
		KeyCoinList: "💰 Paires surveillées ({pairs})\n\n{coins}\n\n" +
			"⚡ Un signal est émis quand tous les critères sont remplis en 4H ou 1D\n" +
			"🔄 Analyse toutes les {interval}",
		KeyCommandMenu:         "🤖 Commandes du bot",
		KeyTierFree:            "🆓 Niveau : Gratuit (permanent)",
		KeyTierPaid:            "💎 Niveau : Premium, {days} jours restants",
		KeyTierAdmin:           "👑 Niveau : Administrateur",
		KeyRecentSignals:       "📈 Signaux récents :",
		KeyNoRecentSignals:     "📭 Aucun signal pour l'instant",
		KeyUnknownCommand:      "❓ Commande inconnue. Tapez /help",
		KeySubscriptionExpired: "⏰ Votre abonnement premium a expiré. Utilisez /subscribe pour le renouveler.",
		KeyButtonStatus:        "📊 État",
		KeyButtonCoins:         "💰 Cryptos",
		KeyButtonHelp:          "📚 Aide",
		KeyButtonLanguage:      "🌍 Langue",
		KeyButtonSubscribe:     "💎 S'abonner",
		KeyButtonAdmin:         "👑 Admin",
		KeyButtonBack:          "🔙 Au Menu",
	},
	LocaleDE: {
		KeySelectLanguage: "🌍 Bitte wähle deine Sprache:",
		KeyLanguageSet:    "✅ Sprache eingestellt: {language}",
		KeyBotIntro: "🤖 EMA20-Ausbruch-Bot\n\n" +
			"📊 Beobachtet {pairs} USDT-Paare auf 4H und 1D\n" +
			"🔍 EMA20-Ausbruch, Widerstandsbruch, Volumenanstieg, Momentum-Kerze\n" +
			"⏰ Scan alle {interval}\n\n" +
			"⚠️ Keine Finanzberatung!",
		KeyStatusReport: "📊 Bot-Status\n\n" +
			"✅ Überwacht: {pairs} Paare\n" +
			"📈 Heute gesendete Signale: {signals_count}\n" +
			"🔄 Scan alle {interval}",
		KeyAdminOnly: "❌ Nur für Administratoren",
		KeyFreeTierWelcome: "🎉 Willkommen beim Crypto EMA20 Breakout Bot!\n\n" +
			"🆓 Du gehörst zu den ersten {capacity} Nutzern: dauerhaft kostenloser Zugang zu allen Signalen.\n\n" +
			"📚 Tippe /help für die Anleitung",
		KeyFreeTierFull: "🎉 Willkommen beim Crypto EMA20 Breakout Bot!\n\n" +
			"🆓 Der kostenlose Zugang ist voll ({capacity}/{capacity} Nutzer).\n" +
			"💰 Premium-Pläne ab 9,99 $/Woche.\n\n" +
			"Nutze /subscribe für Premium-Zugang!",
		KeyNotSubscribed: "🔒 Premium-Funktion\n\n" +
			"Kostenloser Zugang für die ersten {capacity} Nutzer, danach ist ein Abo nötig.\n" +
			"Aktuelle Nutzer: {user_count}/{capacity}\n\n" +
			"Nutze /subscribe, um alle Signale freizuschalten!",
		KeySubscriptionMenu: "💎 Wähle deinen Premium-Plan:",
		KeyPaymentSubmitted: "✅ Zahlungsprüfung angefragt!\n\n" +
			"⏳ Du erhältst innerhalb von 24 Stunden eine Bestätigung.",
		KeyPaymentSuccess: "✅ Zahlung erfolgreich!\n\nWillkommen bei Premium! Voller Zugang für {days} Tage.",
		KeyPaidUsage: "📝 Zahlungsprüfung:\n\n" +
			"/paid <Methode> <Transaktions_Hash>\n\n" +
			"Beispiel:\n/paid USDT TRX123456789",
		KeyHelpFree: "📚 Crypto EMA20 Breakout Bot\n\n" +
			"🆓 Kostenloser Zugang für die ersten {capacity} Nutzer!\n\n" +
			"🤖 Befehle:\n" +
			"/start - Begrüßung und Sprachauswahl\n" +
			"/status - Bot-Status und letzte Signale\n" +
			"/coins - Beobachtete Paare\n" +
			"/help - Diese Anleitung",
		KeyHelpPremium: "📚 Crypto EMA20 Breakout Bot\n\n" +
			"💎 Premium-Abo erforderlich.\n\n" +
			"🤖 Befehle:\n" +
			"/start - Begrüßung und Sprachauswahl\n" +
			"/status - Bot-Status und letzte Signale\n" +
			"/subscribe - Premium-Pläne\n" +
			"/paid <Methode> <Hash> - Zahlungsprüfung\n" +
			"/help - Diese Anleitung",
		KeyCoinList: "💰 Beobachtete Paare ({pairs})\n\n{coins}\n\n" +
			"⚡ Ein Signal entsteht, wenn alle Kriterien auf 4H oder 1D erfüllt sind\n" +
			"🔄 Scan alle {interval}",
		KeyCommandMenu:         "🤖 Bot-Befehle",
		KeyTierFree:            "🆓 Stufe: Kostenlos (dauerhaft)",
		KeyTierPaid:            "💎 Stufe: Premium, noch {days} Tage",
		KeyTierAdmin:           "👑 Stufe: Administrator",
		KeyRecentSignals:       "📈 Letzte Signale:",
		KeyNoRecentSignals:     "📭 Noch keine Signale",
		KeyUnknownCommand:      "❓ Unbekannter Befehl. Tippe /help",
		KeySubscriptionExpired: "⏰ Dein Premium-Abo ist abgelaufen. Nutze /subscribe zum Verlängern.",
		KeyButtonStatus:        "📊 Status",
		KeyButtonCoins:         "💰 Coins",
		KeyButtonHelp:          "📚 Hilfe",
		KeyButtonLanguage:      "🌍 Sprache",
		KeyButtonSubscribe:     "💎 Abonnieren",
		KeyButtonAdmin:         "👑 Admin",
		KeyButtonBack:          "🔙 Zum Menü",
	},
	LocaleRU: {
		KeySelectLanguage: "🌍 Пожалуйста, выберите язык:",
		KeyLanguageSet:    "✅ Язык установлен: {language}",
		KeyBotIntro: "🤖 Крипто EMA20 Бот Пробоев\n\n" +
			"📊 Отслеживает {pairs} USDT пар на 4ч и 1д\n" +
			"🔍 Пробой EMA20, пробой сопротивления, всплеск объёма, импульсная свеча\n" +
			"⏰ Сканирование каждые {interval}\n\n" +
			"⚠️ Это не финансовый совет!",
		KeyStatusReport: "📊 Отчёт о статусе бота\n\n" +
			"✅ Мониторинг: {pairs} пар\n" +
			"📈 Сигналов отправлено сегодня: {signals_count}\n" +
			"🔄 Сканирование каждые {interval}",
		KeyAdminOnly: "❌ Команда только для администратора",
		KeyFreeTierWelcome: "🎉 Добро пожаловать в Crypto EMA20 Breakout Bot!\n\n" +
			"🆓 Вы среди первых {capacity} пользователей: бесплатный доступ ко всем сигналам навсегда.\n\n" +
			"📚 Введите /help для руководства",
		KeyFreeTierFull: "🎉 Добро пожаловать в Crypto EMA20 Breakout Bot!\n\n" +
			"🆓 Бесплатный уровень заполнен ({capacity}/{capacity} пользователей).\n" +
			"💰 Премиум планы от $9.99/неделя.\n\n" +
			"Используйте /subscribe для премиум доступа!",
		KeyNotSubscribed: "🔒 Премиум функция\n\n" +
			"Бесплатный доступ для первых {capacity} пользователей, дальше нужна подписка.\n" +
			"Текущих пользователей: {user_count}/{capacity}\n\n" +
			"Используйте /subscribe, чтобы открыть все сигналы!",
		KeySubscriptionMenu: "💎 Выберите премиум план:",
		KeyPaymentSubmitted: "✅ Запрос на проверку платежа отправлен!\n\n" +
			"⏳ Подтверждение придёт в течение 24 часов.",
		KeyPaymentSuccess: "✅ Платёж успешен!\n\nДобро пожаловать в Премиум! Полный доступ на {days} дней.",
		KeyPaidUsage: "📝 Проверка платежа:\n\n" +
			"/paid <метод> <хеш_транзакции>\n\n" +
			"Пример:\n/paid USDT TRX123456789",
		KeyHelpFree: "📚 Crypto EMA20 Breakout Bot\n\n" +
			"🆓 Бесплатный доступ для первых {capacity} пользователей!\n\n" +
			"🤖 Команды:\n" +
			"/start - Приветствие и выбор языка\n" +
			"/status - Статус бота и последние сигналы\n" +
			"/coins - Отслеживаемые пары\n" +
			"/help - Это руководство",
		KeyHelpPremium: "📚 Crypto EMA20 Breakout Bot\n\n" +
			"💎 Требуется премиум подписка.\n\n" +
			"🤖 Команды:\n" +
			"/start - Приветствие и выбор языка\n" +
			"/status - Статус бота и последние сигналы\n" +
			"/subscribe - Премиум планы\n" +
			"/paid <метод> <хеш> - Проверка платежа\n" +
			"/help - Это руководство",
		KeyCoinList: "💰 Отслеживаемые пары ({pairs})\n\n{coins}\n\n" +
			"⚡ Сигнал срабатывает, когда все критерии выполнены на 4ч или 1д\n" +
			"🔄 Сканирование каждые {interval}",
		KeyCommandMenu:         "🤖 Команды бота",
		KeyTierFree:            "🆓 Уровень: Бесплатный (навсегда)",
		KeyTierPaid:            "💎 Уровень: Премиум, осталось дней: {days}",
		KeyTierAdmin:           "👑 Уровень: Администратор",
		KeyRecentSignals:       "📈 Последние сигналы:",
		KeyNoRecentSignals:     "📭 Сигналов пока нет",
		KeyUnknownCommand:      "❓ Неизвестная команда. Введите /help",
		KeySubscriptionExpired: "⏰ Ваша премиум подписка истекла. Используйте /subscribe для продления.",
		KeyButtonStatus:        "📊 Статус",
		KeyButtonCoins:         "💰 Монеты",
		KeyButtonHelp:          "📚 Помощь",
		KeyButtonLanguage:      "🌍 Язык",
		KeyButtonSubscribe:     "💎 Подписка",
		KeyButtonAdmin:         "👑 Админ",
		KeyButtonBack:          "🔙 В Меню",
	},
}
